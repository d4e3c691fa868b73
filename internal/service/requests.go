package service

// RegisterRequest carries the fields of the sign-up form.
type RegisterRequest struct {
	Username        string `json:"username" validate:"required,min=3,max=50,handle,notreserved"`
	Email           string `json:"email" validate:"required,max=256,email"`
	Password        string `json:"password" validate:"required,min=6,max=100,notcommon"`
	ConfirmPassword string `json:"confirmPassword" validate:"eqfield=Password"`
}

// QuizRequest creates or fully replaces a quiz and its questions. IsActive
// defaults to true on create; on update nil keeps the stored value.
type QuizRequest struct {
	Title            string            `json:"title" validate:"required,notblank,max=200"`
	Description      string            `json:"description" validate:"max=1000"`
	Category         string            `json:"category" validate:"required,notblank,max=100"`
	Difficulty       string            `json:"difficulty" validate:"difficulty"`
	TimeLimitMinutes *int              `json:"timeLimitMinutes" validate:"omitempty,min=1,max=300"`
	IsActive         *bool             `json:"isActive"`
	Questions        []QuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

// QuestionRequest is one question of a QuizRequest. CorrectAnswer is the
// option letter, A to D.
type QuestionRequest struct {
	QuestionText  string   `json:"questionText" validate:"required,notblank,max=500"`
	Options       []string `json:"options" validate:"min=2,max=4,dive,required,notblank,max=500"`
	CorrectAnswer string   `json:"correctAnswer" validate:"required,optionletter"`
}
