// Package coach talks to the external text generator that produces routines,
// weekly plans, insights and chat replies, and applies the fallbacks used when
// the generator is unavailable.
package coach

import (
	"context"

	"github.com/meltforce/jellyfit/internal/models"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of a coach conversation.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Generator is the raw generator contract. Every call may fail or time out;
// callers go through Service, which never surfaces those failures.
type Generator interface {
	// Routines returns templates for the sport. IDs are assigned by the caller.
	Routines(ctx context.Context, sport string) ([]models.Template, error)
	WeeklyPlan(ctx context.Context, profile models.UserProfile) (*models.WeeklyPlan, error)
	Insights(ctx context.Context, sessions []models.Session) (string, error)
	Chat(ctx context.Context, profile models.UserProfile, message string, history []Message) (string, error)
}
