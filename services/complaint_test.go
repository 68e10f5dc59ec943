package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mera-bestie/models"
	"mera-bestie/services"
)

func complaintInput() services.ComplaintInput {
	return services.ComplaintInput{
		Name:     "Asha",
		Email:    "asha@example.com",
		Message:  "My order arrived damaged",
		UserType: "customer",
	}
}

func TestComplaintService_File(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	complaint, err := f.complaints().File(ctx, complaintInput())
	require.NoError(t, err)

	assert.Regexp(t, `^\d{6}$`, complaint.ComplaintNumber)
	assert.Equal(t, models.ComplaintPending, complaint.Status)

	sent := f.sender.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, "asha@example.com", sent[0].To)
	assert.Contains(t, sent[0].Text, complaint.ComplaintNumber)
	assert.Contains(t, sent[0].HTML, "My order arrived damaged")
}

func TestComplaintService_FileValidation(t *testing.T) {
	f := newFixture(t)
	cases := map[string]func(*services.ComplaintInput){
		"name":      func(in *services.ComplaintInput) { in.Name = "" },
		"email":     func(in *services.ComplaintInput) { in.Email = "" },
		"message":   func(in *services.ComplaintInput) { in.Message = "" },
		"user type": func(in *services.ComplaintInput) { in.UserType = "" },
		"bad email": func(in *services.ComplaintInput) { in.Email = "asha" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := complaintInput()
			mutate(&in)
			_, err := f.complaints().File(context.Background(), in)
			requireKind(t, err, services.KindValidation)
		})
	}
}

func TestComplaintService_EmailFailureIsReported(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.sender.failFor["asha@example.com"] = true

	_, err := f.complaints().File(ctx, complaintInput())
	requireKind(t, err, services.KindInternal)

	stored, err := f.complaints().List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, stored, 1, "complaint stays persisted when the email fails")
}

func TestComplaintService_RetriesDuplicateNumber(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.ids.complaintNumbers = []string{"123456"}
	_, err := f.complaints().File(ctx, complaintInput())
	require.NoError(t, err)

	f.ids.complaintNumbers = []string{"123456", "654321"}
	second, err := f.complaints().File(ctx, complaintInput())
	require.NoError(t, err)
	assert.Equal(t, "654321", second.ComplaintNumber)
}

func TestComplaintService_ListAndUpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.complaints().File(ctx, complaintInput())
	require.NoError(t, err)
	_, err = f.complaints().File(ctx, complaintInput())
	require.NoError(t, err)

	updated, err := f.complaints().UpdateStatus(ctx, first.ComplaintNumber, models.ComplaintResolved)
	require.NoError(t, err)
	assert.Equal(t, models.ComplaintResolved, updated.Status)

	// Status strings are stored verbatim.
	_, err = f.complaints().UpdateStatus(ctx, first.ComplaintNumber, "Escalated")
	require.NoError(t, err)

	all, err := f.complaints().List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := f.complaints().List(ctx, models.ComplaintPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	_, err = f.complaints().UpdateStatus(ctx, "000000", models.ComplaintResolved)
	requireKind(t, err, services.KindNotFound)
	_, err = f.complaints().UpdateStatus(ctx, first.ComplaintNumber, "")
	requireKind(t, err, services.KindValidation)
}
