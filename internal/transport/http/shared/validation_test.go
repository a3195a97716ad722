package shared

import "testing"

type samplePayload struct {
	Email string  `validate:"required,email"`
	Lat   float64 `validate:"latitude"`
	Lng   float64 `validate:"longitude"`
}

func TestCheckValidPayload(t *testing.T) {
	issues := Check(samplePayload{Email: "worker@example.com", Lat: 6.9271, Lng: 79.8612})
	if len(issues) != 0 {
		t.Fatalf("expected no issues, got %+v", issues)
	}
}

func TestCheckReportsFieldIssues(t *testing.T) {
	issues := Check(samplePayload{Email: "not-an-email", Lat: 123.4})
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %+v", issues)
	}

	fields := map[string]bool{}
	for _, issue := range issues {
		fields[issue.Field] = true
	}
	if !fields["email"] || !fields["lat"] {
		t.Fatalf("expected email and lat issues, got %+v", issues)
	}
}
