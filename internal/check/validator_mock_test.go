package check

import (
	"github.com/hzerrad/reminderd/internal/crontab"
)

// mockReader is a mock implementation of crontab.Reader for testing
type mockReader struct {
	jobs    []*crontab.Job
	entries []*crontab.Entry
	err     error
}

func (m *mockReader) ReadFile(path string) ([]*crontab.Job, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.jobs, nil
}

func (m *mockReader) ReadUser() ([]*crontab.Job, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.jobs, nil
}

func (m *mockReader) ParseFile(path string) ([]*crontab.Entry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.entries, nil
}

// mockError is a simple error type for testing
type mockError struct {
	msg string
}

func (e *mockError) Error() string {
	return e.msg
}
