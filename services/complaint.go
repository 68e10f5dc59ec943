package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"mera-bestie/models"
	"mera-bestie/utils"
)

const maxComplaintNumberAttempts = 5

type ComplaintService struct {
	complaints ComplaintRepository
	notifier   *Notifier
	ids        utils.IDs
	logger     *zap.Logger
	now        func() time.Time
}

func NewComplaintService(complaints ComplaintRepository, notifier *Notifier, ids utils.IDs, logger *zap.Logger) *ComplaintService {
	return &ComplaintService{
		complaints: complaints,
		notifier:   notifier,
		ids:        ids,
		logger:     logger,
		now:        time.Now,
	}
}

type ComplaintInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Message  string `json:"message"`
	UserType string `json:"userType"`
}

// File persists a Pending complaint and sends the acknowledgement email.
// When the email fails the complaint remains stored and the error is
// returned to the caller.
func (s *ComplaintService) File(ctx context.Context, in ComplaintInput) (*models.Complaint, error) {
	in.Email = strings.TrimSpace(in.Email)
	if in.Name == "" || in.Email == "" || in.Message == "" || in.UserType == "" {
		return nil, validationError("All fields (name, email, message, userType) are required.")
	}
	if !validEmail(in.Email) {
		return nil, validationError("Invalid email format")
	}

	now := s.now()
	complaint := &models.Complaint{
		Name:      in.Name,
		Email:     in.Email,
		Message:   in.Message,
		UserType:  in.UserType,
		Status:    models.ComplaintPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	var err error
	for attempt := 0; attempt < maxComplaintNumberAttempts; attempt++ {
		complaint.ComplaintNumber = s.ids.ComplaintNumber()
		if err = s.complaints.Create(ctx, complaint); !errors.Is(err, models.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, internalError("Error registering complaint", err)
	}

	msg := utils.ComplaintConfirmation(complaint.Email, complaint.ComplaintNumber, complaint.Message)
	if err := s.notifier.Send(ctx, msg); err != nil {
		s.logger.Error("complaint acknowledgement failed",
			zap.String("complaint_number", complaint.ComplaintNumber),
			zap.Error(err))
		return nil, internalError("Error registering complaint", err)
	}
	return complaint, nil
}

// List returns every complaint, or those in status when it is set.
func (s *ComplaintService) List(ctx context.Context, status string) ([]models.Complaint, error) {
	complaints, err := s.complaints.List(ctx, status)
	if err != nil {
		return nil, internalError("Error fetching complaints", err)
	}
	if complaints == nil {
		complaints = []models.Complaint{}
	}
	return complaints, nil
}

// UpdateStatus stores status verbatim; no transition rules are enforced.
func (s *ComplaintService) UpdateStatus(ctx context.Context, complaintNumber, status string) (*models.Complaint, error) {
	if complaintNumber == "" || status == "" {
		return nil, validationError("complaintId and status are required.")
	}
	complaint, err := s.complaints.UpdateStatus(ctx, complaintNumber, status)
	if err != nil {
		return nil, internalError("Error updating complaint status", err)
	}
	if complaint == nil {
		return nil, notFoundError("Complaint not found")
	}
	return complaint, nil
}
