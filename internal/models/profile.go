package models

import (
	"time"
)

/*
|--------------------------------------------------------------------------
| DATABASE MODEL (INTERNAL)
|--------------------------------------------------------------------------
| Used for queries against the profiles table
*/
type Profile struct {
	ID          string
	FullName    string
	Email       string
	Password    string
	Role        string // patient, doctor, admin
	DateOfBirth string
	MomFullName string
	Priority    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	RolePatient = "patient"
	RoleDoctor  = "doctor"
	RoleAdmin   = "admin"
)

/*
|--------------------------------------------------------------------------
| REQUEST
|--------------------------------------------------------------------------
*/
type RegisterRequest struct {
	FullName       string `json:"full_name" validate:"required,max=255"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	Role           string `json:"role" validate:"required,oneof=patient doctor"`
	DateOfBirth    string `json:"date_of_birth"`
	MomFullName    string `json:"mom_full_name"`
	Priority       bool   `json:"priority"`
	RecaptchaToken string `json:"recaptcha_token"`
}

type LoginRequest struct {
	Email          string `json:"email" validate:"required"`
	Password       string `json:"password" validate:"required"`
	RecaptchaToken string `json:"recaptcha_token"`
}

/*
|--------------------------------------------------------------------------
| RESPONSE DTO
|--------------------------------------------------------------------------
| Password hash never leaves the API
*/
type ProfileResponse struct {
	ID          string `json:"id"`
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	MomFullName string `json:"mom_full_name,omitempty"`
	Priority    bool   `json:"priority"`
}

type LoginResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

/*
|--------------------------------------------------------------------------
| MAPPER
|--------------------------------------------------------------------------
| Convert Profile (DB) -> ProfileResponse (API)
*/
func ToProfileResponse(p Profile) ProfileResponse {
	return ProfileResponse{
		ID:          p.ID,
		FullName:    p.FullName,
		Email:       p.Email,
		Role:        p.Role,
		DateOfBirth: p.DateOfBirth,
		MomFullName: p.MomFullName,
		Priority:    p.Priority,
	}
}
