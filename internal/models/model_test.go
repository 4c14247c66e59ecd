package models

import (
	"testing"
)

func TestTeamMemberListScan(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  int
	}{
		{
			name:  "json array bytes",
			input: []byte(`[{"name":"Asha","usn":"1AB21CS001","phone":"9876543210"}]`),
			want:  1,
		},
		{
			name:  "json array string",
			input: `[{"name":"Asha","usn":"1AB21CS001","phone":"9876543210"},{"name":"Ravi","usn":"1AB21CS002","phone":"9876543211"}]`,
			want:  2,
		},
		{
			name:  "nil degrades to empty",
			input: nil,
			want:  0,
		},
		{
			name:  "bare string degrades to empty",
			input: `not json at all`,
			want:  0,
		},
		{
			name:  "json object degrades to empty",
			input: []byte(`{"name":"Asha"}`),
			want:  0,
		},
		{
			name:  "unexpected type degrades to empty",
			input: 42,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l TeamMemberList
			if err := l.Scan(tt.input); err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if len(l) != tt.want {
				t.Fatalf("Scan() produced %d members, want %d", len(l), tt.want)
			}
		})
	}
}

func TestTeamMemberListValue(t *testing.T) {
	var nilList TeamMemberList
	v, err := nilList.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v != "[]" {
		t.Fatalf("nil list Value() = %v, want empty JSON array", v)
	}

	l := TeamMemberList{{Name: "Asha", USN: "1AB21CS001", Phone: "9876543210"}}
	v, err = l.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var back TeamMemberList
	if err := back.Scan(v); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(back) != 1 || back[0].USN != "1AB21CS001" {
		t.Fatalf("round trip lost data: %+v", back)
	}
}
