package dto

// Requests carry no timestamps or author fields: those are set server side.

type QuestionRequest struct {
	Subject string `json:"subject" example:"How do I paginate?"`
	Content string `json:"content" example:"Markdown **body**"`
}

type AnswerRequest struct {
	Content string `json:"content" example:"Use LIMIT and OFFSET."`
}

type SignupRequest struct {
	Username  string `json:"username" example:"alice"`
	Email     string `json:"email" example:"alice@example.com"`
	Password1 string `json:"password1"`
	Password2 string `json:"password2"`
}

type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password"`
}
