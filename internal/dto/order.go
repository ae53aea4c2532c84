package dto

import (
	"time"

	"studentsites/internal/domain"
)

type SubmitOrderRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	WebsiteType string `json:"websiteType"`
	Package     string `json:"package"`
	Referral    string `json:"referral,omitempty"`
	Preferences string `json:"preferences,omitempty"`
}

func (r SubmitOrderRequest) ToDomain() domain.OrderSubmission {
	return domain.OrderSubmission{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		WebsiteType: r.WebsiteType,
		Package:     r.Package,
		Referral:    r.Referral,
		Preferences: r.Preferences,
	}
}

// UpdateStatusRequest carries the target status. Version is optional and
// turns the update into a compare-and-swap.
type UpdateStatusRequest struct {
	Status  string `json:"status"`
	Version *int64 `json:"version,omitempty"`
}

type OrderResponse struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	WebsiteType string    `json:"websiteType"`
	Package     string    `json:"package"`
	Referral    string    `json:"referral,omitempty"`
	Preferences string    `json:"preferences,omitempty"`
	Status      string    `json:"status"`
	OrderDate   time.Time `json:"orderDate"`
	Version     int64     `json:"version"`
}

func NewOrderResponse(o domain.Order) OrderResponse {
	return OrderResponse{
		ID:          o.ID,
		Name:        o.Name,
		Email:       o.Email,
		Phone:       o.Phone,
		WebsiteType: o.WebsiteType,
		Package:     string(o.Package),
		Referral:    o.Referral,
		Preferences: o.Preferences,
		Status:      string(o.Status),
		OrderDate:   o.OrderDate,
		Version:     o.Version,
	}
}

func NewOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = NewOrderResponse(o)
	}
	return out
}

func (r OrderResponse) ToDomain() domain.Order {
	return domain.Order{
		ID:          r.ID,
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		WebsiteType: r.WebsiteType,
		Package:     domain.PackageType(r.Package),
		Referral:    r.Referral,
		Preferences: r.Preferences,
		Status:      domain.Status(r.Status),
		OrderDate:   r.OrderDate,
		Version:     r.Version,
	}
}

// ProjectResponse is the public project board entry.
type ProjectResponse struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	WebsiteType string `json:"websiteType"`
	Status      string `json:"status"`
}

func NewProjectResponses(projects []domain.ProjectSummary) []ProjectResponse {
	out := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		out[i] = ProjectResponse{
			ID:          p.ID,
			Name:        p.Name,
			WebsiteType: p.WebsiteType,
			Status:      string(p.Status),
		}
	}
	return out
}

// OrderFilterQuery is the query string accepted by the admin order listing.
type OrderFilterQuery struct {
	WebsiteType string `url:"websiteType,omitempty"`
	Package     string `url:"package,omitempty"`
	Referral    string `url:"referral,omitempty"`
}

func (q OrderFilterQuery) ToDomain() domain.FilterCriteria {
	return domain.FilterCriteria{
		WebsiteType: q.WebsiteType,
		Package:     q.Package,
		Referral:    q.Referral,
	}
}
