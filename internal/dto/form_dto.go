package dto

// Page forms are bound with gin's form binding; validation tags are checked
// by validator/v10 (see RegisterValidators for custom rules).

type LoginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

type RegisterForm struct {
	Email         string `form:"email" binding:"required,email"`
	Password      string `form:"password" binding:"required"`
	FullName      string `form:"full_name" binding:"required"`
	Qualification string `form:"qualification" binding:"required"`
	Dob           string `form:"dob" binding:"required,datetime=2006-01-02"`
}

type SubjectForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
}

type ChapterForm struct {
	Name        string `form:"name" binding:"required"`
	Description string `form:"description"`
}

type ChapterCreateForm struct {
	ChapterForm
	SubjectID uint `form:"subject_id" binding:"required"`
}

type QuizForm struct {
	DateOfQuiz   string `form:"date_of_quiz" binding:"required,datetime=2006-01-02"`
	TimeDuration string `form:"time_duration" binding:"required,hhmm"`
	Remarks      string `form:"remarks"`
}

type QuizCreateForm struct {
	QuizForm
	ChapterID uint `form:"chapter_id" binding:"required"`
}

type QuestionForm struct {
	QuestionStatement string `form:"question_statement" binding:"required"`
	Option1           string `form:"option1" binding:"required"`
	Option2           string `form:"option2" binding:"required"`
	Option3           string `form:"option3" binding:"required"`
	Option4           string `form:"option4" binding:"required"`
	CorrectOption     int    `form:"correct_option" binding:"required,min=1,max=4"`
}

type QuestionCreateForm struct {
	QuestionForm
	QuizID uint `form:"quiz_id" binding:"required"`
}

// SearchQuery is the query string of the admin search page.
type SearchQuery struct {
	Query string `form:"query"`
	Type  string `form:"type"`
}
