package domain

import "time"

const (
	StatusValid   = "Valid"
	StatusRevoked = "Revoked"
)

// Certificate binds a document hash to student and program metadata and the
// issuing identity. Only Status ever changes after creation, and only from
// Valid to Revoked. Hashes are not unique across records: duplicate issuance
// is legal, verification returns the first match in storage order.
type Certificate struct {
	ID          string    `json:"id"`
	StudentName string    `json:"student_name"`
	StudentID   string    `json:"student_id"`
	Program     string    `json:"program"`
	IssueDate   string    `json:"issue_date"`
	Hash        string    `json:"hash"`
	Tx          string    `json:"tx"`
	Status      string    `json:"status"`
	IssuerEmail string    `json:"issuer_email"`
	CreatedAt   time.Time `json:"created_at"`
}

type Stats struct {
	Total   int `json:"total"`
	Valid   int `json:"valid"`
	Revoked int `json:"revoked"`
}
