// Package projects defines the marketplace's command and query objects.
// Each request maps 1:1 onto one HTTP route and one handler; field rules
// are pure functions over the request's own fields (no lookups).
package projects

import (
	"fmt"

	"github.com/freela-market/freela-backend/internal/auth"
	"github.com/freela-market/freela-backend/internal/dispatch"
	"github.com/freela-market/freela-backend/internal/projects/domain"
)

const (
	maxCommentLen = 1000
)

type CreateProject struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ClientID    int64  `json:"client_id"`
}

func (CreateProject) RequestName() string { return "projects.create" }

func (c CreateProject) Validate() []dispatch.FieldViolation {
	var out []dispatch.FieldViolation
	out = appendRequired(out, "title", c.Title)
	out = appendMaxLen(out, "title", c.Title, domain.MaxTitleLen)
	out = appendRequired(out, "description", c.Description)
	out = appendMaxLen(out, "description", c.Description, domain.MaxDescriptionLen)
	if c.ClientID <= 0 {
		out = append(out, dispatch.FieldViolation{Field: "client_id", Message: "must be a positive id"})
	}
	return out
}

type UpdateProject struct {
	ID          int64  `json:"-"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (UpdateProject) RequestName() string { return "projects.update" }

func (c UpdateProject) Validate() []dispatch.FieldViolation {
	var out []dispatch.FieldViolation
	out = appendPositiveID(out, "id", c.ID)
	out = appendRequired(out, "title", c.Title)
	out = appendMaxLen(out, "title", c.Title, domain.MaxTitleLen)
	out = appendRequired(out, "description", c.Description)
	out = appendMaxLen(out, "description", c.Description, domain.MaxDescriptionLen)
	return out
}

type DeleteProject struct {
	ID int64 `json:"-"`
}

func (DeleteProject) RequestName() string { return "projects.delete" }

func (c DeleteProject) Validate() []dispatch.FieldViolation {
	return appendPositiveID(nil, "id", c.ID)
}

type StartProject struct {
	ID int64 `json:"-"`
	// FreelancerID optionally assigns the freelancer before starting.
	FreelancerID int64 `json:"freelancer_id"`
}

func (StartProject) RequestName() string { return "projects.start" }

func (c StartProject) Validate() []dispatch.FieldViolation {
	out := appendPositiveID(nil, "id", c.ID)
	if c.FreelancerID < 0 {
		out = append(out, dispatch.FieldViolation{Field: "freelancer_id", Message: "must be a positive id"})
	}
	return out
}

type FinishProject struct {
	ID int64 `json:"-"`
}

func (FinishProject) RequestName() string { return "projects.finish" }

func (c FinishProject) Validate() []dispatch.FieldViolation {
	return appendPositiveID(nil, "id", c.ID)
}

type CreateComment struct {
	ProjectID  int64  `json:"-"`
	AuthorID   int64  `json:"-"`
	AuthorRole string `json:"-"`
	Text       string `json:"text"`
}

func (CreateComment) RequestName() string { return "projects.comment" }

func (c CreateComment) Validate() []dispatch.FieldViolation {
	out := appendPositiveID(nil, "project_id", c.ProjectID)
	out = appendRequired(out, "text", c.Text)
	out = appendMaxLen(out, "text", c.Text, maxCommentLen)
	return out
}

type GetAllProjects struct {
	// Query is an optional free-text filter over title and description.
	Query string `form:"query"`
}

func (GetAllProjects) RequestName() string { return "projects.get_all" }

type GetProjectByID struct {
	ID int64 `json:"-"`
}

func (GetProjectByID) RequestName() string { return "projects.get_by_id" }

func (q GetProjectByID) Validate() []dispatch.FieldViolation {
	return appendPositiveID(nil, "id", q.ID)
}

// Permissions is the static request-name → permitted-roles table consumed
// by the dispatcher's authorization gate.
func Permissions() map[string][]string {
	both := []string{auth.RoleClient, auth.RoleFreelancer}
	clientOnly := []string{auth.RoleClient}

	return map[string][]string{
		CreateProject{}.RequestName():  clientOnly,
		UpdateProject{}.RequestName():  clientOnly,
		DeleteProject{}.RequestName():  clientOnly,
		StartProject{}.RequestName():   clientOnly,
		FinishProject{}.RequestName():  clientOnly,
		CreateComment{}.RequestName():  both,
		GetAllProjects{}.RequestName(): both,
		GetProjectByID{}.RequestName(): both,
	}
}

func appendRequired(out []dispatch.FieldViolation, field, value string) []dispatch.FieldViolation {
	if value == "" {
		out = append(out, dispatch.FieldViolation{Field: field, Message: "is required"})
	}
	return out
}

func appendMaxLen(out []dispatch.FieldViolation, field, value string, max int) []dispatch.FieldViolation {
	if len(value) > max {
		out = append(out, dispatch.FieldViolation{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters", max),
		})
	}
	return out
}

func appendPositiveID(out []dispatch.FieldViolation, field string, id int64) []dispatch.FieldViolation {
	if id <= 0 {
		out = append(out, dispatch.FieldViolation{Field: field, Message: "must be a positive id"})
	}
	return out
}
