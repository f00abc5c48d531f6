package command

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aja-school/aja-fees-hub/internal/domain/notification"
	"github.com/aja-school/aja-fees-hub/internal/domain/shared"
	"github.com/aja-school/aja-fees-hub/internal/domain/student"
)

// fakeMessenger records sends and returns a canned SID or error.
type fakeMessenger struct {
	sentTo   []string
	sentBody []string
	sid      string
	err      error
}

func (m *fakeMessenger) Send(ctx context.Context, to, body string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.sentTo = append(m.sentTo, to)
	m.sentBody = append(m.sentBody, body)
	return m.sid, nil
}

func enrolled(t *testing.T, repo *fakeStudentRepo) student.AdmissionNo {
	t.Helper()
	h := NewEnrollStudentHandler(repo, nil)
	result, err := h.Handle(context.Background(), EnrollStudentCommand{
		FirstName:  "Amina",
		MiddleName: "Wanjiru",
		Grade:      "Grade1",
	})
	require.NoError(t, err)
	return result.AdmissionNo
}

func TestDispatchStatement_SendsLink(t *testing.T) {
	repo := newFakeStudentRepo()
	no := enrolled(t, repo)

	messenger := &fakeMessenger{sid: "SM123"}
	h := NewDispatchStatementHandler(repo, messenger, "https://fees.ajaschool.example", nil)

	result, err := h.Handle(context.Background(), DispatchStatementCommand{
		AdmissionNo: no.String(),
		To:          "whatsapp:+254700000000",
	})

	require.NoError(t, err)
	assert.Equal(t, "SM123", result.Delivery.CorrelationID)
	assert.Equal(t, notification.ChannelWhatsApp, result.Delivery.Channel)
	assert.Equal(t, "whatsapp:+254700000000", result.Delivery.To)
	assert.NotEmpty(t, result.Delivery.ID)
	assert.False(t, result.Delivery.SentAt.IsZero())

	require.Len(t, messenger.sentBody, 1)
	assert.Equal(t,
		"Fee statement: https://fees.ajaschool.example/api/v1/students/AJA001/statement",
		messenger.sentBody[0])
}

func TestDispatchStatement_TrimsBaseURLSlash(t *testing.T) {
	repo := newFakeStudentRepo()
	no := enrolled(t, repo)

	messenger := &fakeMessenger{sid: "SM123"}
	h := NewDispatchStatementHandler(repo, messenger, "https://fees.ajaschool.example/", nil)

	_, err := h.Handle(context.Background(), DispatchStatementCommand{
		AdmissionNo: no.String(),
		To:          "whatsapp:+254700000000",
	})

	require.NoError(t, err)
	require.Len(t, messenger.sentBody, 1)
	assert.NotContains(t, messenger.sentBody[0], "example//")
}

func TestDispatchStatement_MissingDestination(t *testing.T) {
	repo := newFakeStudentRepo()
	no := enrolled(t, repo)

	messenger := &fakeMessenger{sid: "SM123"}
	h := NewDispatchStatementHandler(repo, messenger, "https://fees.ajaschool.example", nil)

	_, err := h.Handle(context.Background(), DispatchStatementCommand{AdmissionNo: no.String()})

	require.Error(t, err)
	assert.True(t, shared.IsMissingField(err))
	assert.Contains(t, err.Error(), "missing field to")
	assert.Empty(t, messenger.sentTo, "provider must not be called")
}

func TestDispatchStatement_UnknownStudent(t *testing.T) {
	repo := newFakeStudentRepo()

	messenger := &fakeMessenger{sid: "SM123"}
	h := NewDispatchStatementHandler(repo, messenger, "https://fees.ajaschool.example", nil)

	_, err := h.Handle(context.Background(), DispatchStatementCommand{
		AdmissionNo: "AJA999",
		To:          "whatsapp:+254700000000",
	})

	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))
	assert.Empty(t, messenger.sentTo, "provider must not be called")
}

func TestDispatchStatement_ProviderFailurePropagates(t *testing.T) {
	repo := newFakeStudentRepo()
	no := enrolled(t, repo)

	providerErr := shared.WrapError("notification", "Send", shared.ErrDispatchFailed,
		"provider error 21211: invalid destination", errors.New("400"))
	messenger := &fakeMessenger{err: providerErr}
	h := NewDispatchStatementHandler(repo, messenger, "https://fees.ajaschool.example", nil)

	_, err := h.Handle(context.Background(), DispatchStatementCommand{
		AdmissionNo: no.String(),
		To:          "whatsapp:not-a-number",
	})

	require.Error(t, err)
	assert.True(t, shared.IsDispatchFailed(err))
}
