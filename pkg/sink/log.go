package sink

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Log records submissions on a logrus logger. Name and email are redacted
// and the password is never logged.
type Log struct {
	logger logrus.FieldLogger
}

// NewLog returns a Log sink. A nil logger uses the logrus standard logger.
func NewLog(logger logrus.FieldLogger) *Log {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Log{logger: logger}
}

func (*Log) archive() {}

func (l *Log) Submit(ctx context.Context, submission Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.logger.WithFields(logrus.Fields{
		"submission_id": submission.ID,
		"submitted_at":  submission.SubmittedAt,
		"name":          RedactName(submission.Values.Name),
		"email":         RedactEmail(submission.Values.Email),
	}).Info("Form submitted")
	return nil
}
