package dto

import (
	"time"

	"github.com/clubledger/clubledger/internal/core/domain"
)

// SignupRequest is the public membership application form. FormRenderedAt is
// stamped by the client when the form was first shown and feeds the spam
// scorer's timing heuristic.
type SignupRequest struct {
	Name           string    `json:"name" binding:"required"`
	Email          string    `json:"email" binding:"required,email"`
	Password       string    `json:"password" binding:"required,min=8"`
	Message        string    `json:"message"`
	FormRenderedAt time.Time `json:"formRenderedAt"`
}

// CreateMemberRequest creates a member with explicit capabilities
// (member_manage only).
type CreateMemberRequest struct {
	Name         string   `json:"name" binding:"required"`
	Email        string   `json:"email" binding:"required,email"`
	Password     string   `json:"password" binding:"required,min=8"`
	Capabilities []string `json:"capabilities"`
}

// UpdateMemberRequest updates member fields; pointers distinguish omitted
// fields from zero values.
type UpdateMemberRequest struct {
	Name         *string   `json:"name"`
	Capabilities *[]string `json:"capabilities"`
	IsActive     *bool     `json:"isActive"`
}

// MemberResponse mirrors domain.Member, never exposing the password hash.
type MemberResponse struct {
	MemberID     string    `json:"memberID"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Capabilities []string  `json:"capabilities"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToMemberResponse converts a domain.Member to its response DTO.
func ToMemberResponse(m *domain.Member) MemberResponse {
	return MemberResponse{
		MemberID:     m.MemberID,
		Name:         m.Name,
		Email:        m.Email,
		Capabilities: m.Capabilities,
		IsActive:     m.IsActive,
		CreatedAt:    m.CreatedAt,
	}
}

// ListMembersParams defines pagination for the member list.
type ListMembersParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListMembersResponse wraps the member list.
type ListMembersResponse struct {
	Members []MemberResponse `json:"members"`
}
