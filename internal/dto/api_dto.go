package dto

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type SubjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ChapterResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// QuizResponse is a quiz without its questions. DateOfQuiz is YYYY-MM-DD.
type QuizResponse struct {
	ID           uint   `json:"id"`
	ChapterID    uint   `json:"chapter_id"`
	DateOfQuiz   string `json:"date_of_quiz"`
	TimeDuration string `json:"time_duration"`
	Remarks      string `json:"remarks"`
}

// QuestionResponse never carries the correct option.
type QuestionResponse struct {
	ID                uint     `json:"id"`
	QuestionStatement string   `json:"question_statement"`
	Options           []string `json:"options"`
}

type QuizDetailResponse struct {
	QuizResponse
	Questions []QuestionResponse `json:"questions"`
}

// ScoreResponse is a score as seen by its owner. TimeStamp is ISO 8601.
type ScoreResponse struct {
	ID          uint   `json:"id"`
	QuizID      uint   `json:"quiz_id"`
	TotalScored int    `json:"total_scored"`
	TimeStamp   string `json:"time_stamp"`
}

type AdminScoreResponse struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	QuizID      uint   `json:"quiz_id"`
	TotalScored int    `json:"total_scored"`
	TimeStamp   string `json:"time_stamp"`
}

type UserResponse struct {
	ID            uint   `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Qualification string `json:"qualification"`
	IsAdmin       bool   `json:"is_admin"`
}
