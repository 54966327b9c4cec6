package customers

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a buying customer, optionally linked to an agent.
type Customer struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Contact   string     `json:"contact"`
	RefID     string     `json:"customer_ref_id,omitempty"`
	AgentID   *uuid.UUID `json:"agent_id,omitempty"`
	Address   string     `json:"address,omitempty"`
	Email     string     `json:"email,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
