package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusCreated    Status = "created"
	StatusInProgress Status = "in_progress"
	StatusFinished   Status = "finished"
	StatusCancelled  Status = "cancelled"
)

const (
	MaxTitleLen       = 30
	MaxDescriptionLen = 300
)

// Project is the consistency boundary of the marketplace: lifecycle state,
// ownership and comments are mutated only through its methods. Version
// backs the repository's optimistic concurrency check.
type Project struct {
	ID           int64      `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ClientID     int64      `json:"client_id"`
	FreelancerID *int64     `json:"freelancer_id,omitempty"`
	Status       Status     `json:"status"`
	Version      int32      `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	Comments     []Comment  `json:"comments,omitempty"`
}

// Comment belongs to exactly one project and keeps its insertion order
// through CreatedAt.
type Comment struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  int64     `json:"project_id"`
	AuthorID   int64     `json:"author_id"`
	AuthorRole string    `json:"author_role"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

// New builds a project in Created. Length bounds are enforced upstream by
// the validation behavior and restated here as an aggregate invariant.
func New(title, description string, clientID int64, now time.Time) (*Project, error) {
	if len(title) > MaxTitleLen {
		return nil, ErrTitleTooLong
	}
	if len(description) > MaxDescriptionLen {
		return nil, ErrDescriptionTooLong
	}
	if clientID <= 0 {
		return nil, fmt.Errorf("client id required")
	}

	return &Project{
		Title:       title,
		Description: description,
		ClientID:    clientID,
		Status:      StatusCreated,
		CreatedAt:   now,
	}, nil
}

// Start moves the project to InProgress and records the start time.
func (p *Project) Start(now time.Time) error {
	if p.Status != StatusCreated {
		return fmt.Errorf("start from %s: %w", p.Status, ErrInvalidTransition)
	}

	p.Status = StatusInProgress
	p.StartedAt = &now
	return nil
}

// Finish moves the project to Finished and records the finish time.
func (p *Project) Finish(now time.Time) error {
	if p.Status != StatusInProgress {
		return fmt.Errorf("finish from %s: %w", p.Status, ErrInvalidTransition)
	}

	p.Status = StatusFinished
	p.FinishedAt = &now
	return nil
}

// Cancel is reachable only before the work is done.
func (p *Project) Cancel() error {
	if p.Status != StatusCreated && p.Status != StatusInProgress {
		return fmt.Errorf("cancel from %s: %w", p.Status, ErrInvalidTransition)
	}

	p.Status = StatusCancelled
	return nil
}

// UpdateDetails changes title and description while the project is still
// open. Bounds are restated like in New.
func (p *Project) UpdateDetails(title, description string) error {
	if p.Status == StatusFinished || p.Status == StatusCancelled {
		return fmt.Errorf("update in %s: %w", p.Status, ErrInvalidTransition)
	}
	if len(title) > MaxTitleLen {
		return ErrTitleTooLong
	}
	if len(description) > MaxDescriptionLen {
		return ErrDescriptionTooLong
	}

	p.Title = title
	p.Description = description
	return nil
}

// AssignFreelancer sets the freelancer who will work the project. Only
// allowed before the work starts.
func (p *Project) AssignFreelancer(freelancerID int64) error {
	if p.Status != StatusCreated {
		return fmt.Errorf("assign in %s: %w", p.Status, ErrInvalidTransition)
	}
	if freelancerID <= 0 {
		return fmt.Errorf("freelancer id required")
	}

	p.FreelancerID = &freelancerID
	return nil
}

// NewComment creates a comment on this project. The author must be the
// owning client or the assigned freelancer, and comments are closed once
// the project is finished or cancelled.
func (p *Project) NewComment(authorID int64, authorRole, text string, now time.Time) (*Comment, error) {
	if p.Status != StatusCreated && p.Status != StatusInProgress {
		return nil, fmt.Errorf("comment in %s: %w", p.Status, ErrInvalidTransition)
	}
	if !p.isParticipant(authorID) {
		return nil, ErrCommentForbidden
	}

	return &Comment{
		ID:         uuid.New(),
		ProjectID:  p.ID,
		AuthorID:   authorID,
		AuthorRole: authorRole,
		Text:       text,
		CreatedAt:  now,
	}, nil
}

// EnsureDeletable guards the irreversible delete: no deletion once work
// has started.
func (p *Project) EnsureDeletable() error {
	if p.Status != StatusCreated {
		return fmt.Errorf("delete in %s: %w", p.Status, ErrInvalidTransition)
	}
	return nil
}

func (p *Project) isParticipant(userID int64) bool {
	if userID == p.ClientID {
		return true
	}
	return p.FreelancerID != nil && *p.FreelancerID == userID
}
