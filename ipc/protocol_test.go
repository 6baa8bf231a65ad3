package ipc

import (
	"bytes"
	"testing"

	"github.com/nstehr/rampart/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		wantErr bool
	}{
		{"config", `{"unitInformation":[{"shorthand":"FF"}]}`, TypeConfig, false},
		{"turn", `{"turnInfo":[0,3,0],"p1Stats":[30,25,5,0]}`, TypeTurn, false},
		{"action", `{"turnInfo":[1,3,17]}`, TypeAction, false},
		{"end", `{"turnInfo":[2,40,0]}`, TypeEnd, false},
		{"unknown phase", `{"turnInfo":[7,1]}`, "", true},
		{"no markers", `{"debug":{}}`, "", true},
		{"not json", `hello`, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env, err := Classify([]byte(tc.line))
			if tc.wantErr {
				if err == nil {
					t.Errorf("Classify(%s) succeeded with type %q, want error", tc.line, env.Type)
				}
				return
			}
			if err != nil {
				t.Fatalf("Classify(%s): %v", tc.line, err)
			}
			if env.Type != tc.want {
				t.Errorf("type = %q, want %q", env.Type, tc.want)
			}
			if string(env.Data) != tc.line {
				t.Errorf("data = %s, want the original line", env.Data)
			}
		})
	}
}

func TestWriteSubmission(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSubmission(&buf, Submission{
		Build: []Spawn{
			{Shorthand: "EF", Cell: model.Cell{X: 14, Y: 1}},
			{Shorthand: "FF", Cell: model.Cell{X: 0, Y: 13}},
		},
		Deploy: []Spawn{{Shorthand: "PI", Cell: model.Cell{X: 13, Y: 0}}},
	})
	if err != nil {
		t.Fatalf("WriteSubmission: %v", err)
	}
	want := "[[\"EF\",14,1],[\"FF\",0,13]]\n[[\"PI\",13,0]]\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWriteEmptySubmission(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSubmission(&buf, Submission{}); err != nil {
		t.Fatalf("WriteSubmission: %v", err)
	}
	if got, want := buf.String(), "[]\n[]\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
