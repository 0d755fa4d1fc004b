// Package docs is the swagger document for the token API, in the format
// emitted by swag init.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Issue an API token",
                "parameters": [
                    {"description": "Email and password", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.TokenResponse"}},
                    "401": {"description": "Could not verify", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/subjects": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "List subjects",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.SubjectResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/subjects/{subject_id}/chapters": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "List the chapters of a subject",
                "parameters": [
                    {"type": "integer", "description": "Subject ID", "name": "subject_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ChapterResponse"}}},
                    "400": {"description": "Invalid Subject ID format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/quizzes": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "List quizzes",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.QuizResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/quizzes/{quiz_id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Correct options are never included.",
                "produces": ["application/json"],
                "tags": ["Catalog"],
                "summary": "Get a quiz with its questions",
                "parameters": [
                    {"type": "integer", "description": "Quiz ID", "name": "quiz_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.QuizDetailResponse"}},
                    "400": {"description": "Invalid Quiz ID format", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Quiz not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/users/me/scores": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Scores"],
                "summary": "List the caller's scores",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.ScoreResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "(Admin) List users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.UserResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Admin privileges required", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/admin/scores": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "(Admin) List all scores",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.AdminScoreResponse"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "403": {"description": "Admin privileges required", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "dto.TokenResponse": {"type": "object", "properties": {"token": {"type": "string"}}},
        "dto.ErrorResponse": {"type": "object", "properties": {"message": {"type": "string"}, "details": {"type": "array", "items": {"type": "string"}}}},
        "dto.SubjectResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "description": {"type": "string"}}},
        "dto.ChapterResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "name": {"type": "string"}, "description": {"type": "string"}}},
        "dto.QuizResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "chapter_id": {"type": "integer"}, "date_of_quiz": {"type": "string"}, "time_duration": {"type": "string"}, "remarks": {"type": "string"}}},
        "dto.QuestionResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "question_statement": {"type": "string"}, "options": {"type": "array", "items": {"type": "string"}}}},
        "dto.QuizDetailResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "chapter_id": {"type": "integer"}, "date_of_quiz": {"type": "string"}, "time_duration": {"type": "string"}, "remarks": {"type": "string"}, "questions": {"type": "array", "items": {"$ref": "#/definitions/dto.QuestionResponse"}}}},
        "dto.ScoreResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "quiz_id": {"type": "integer"}, "total_scored": {"type": "integer"}, "time_stamp": {"type": "string"}}},
        "dto.AdminScoreResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "user_id": {"type": "integer"}, "quiz_id": {"type": "integer"}, "total_scored": {"type": "integer"}, "time_stamp": {"type": "string"}}},
        "dto.UserResponse": {"type": "object", "properties": {"id": {"type": "integer"}, "email": {"type": "string"}, "full_name": {"type": "string"}, "qualification": {"type": "string"}, "is_admin": {"type": "boolean"}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Quizhub API",
	Description:      "Token-authenticated read API over subjects, quizzes and scores.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
