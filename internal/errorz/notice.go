package errorz

import "errors"

// Notice wraps a refusal (ErrPermissionDenied, ErrSelfVote) with the
// question, and optionally the answer, whose detail view the user should be
// sent back to.
type Notice struct {
	Err        error
	QuestionID uint
	AnswerID   uint
}

func (n *Notice) Error() string { return n.Err.Error() }

func (n *Notice) Unwrap() error { return n.Err }

func Refuse(err error, questionID, answerID uint) error {
	return &Notice{Err: err, QuestionID: questionID, AnswerID: answerID}
}

func AsNotice(err error) (*Notice, bool) {
	var n *Notice
	if errors.As(err, &n) {
		return n, true
	}
	return nil, false
}
