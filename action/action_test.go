package action

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/oligo/textcore/internal/errs"
)

func TestRoundTripJSON(t *testing.T) {
	testcases := []struct {
		name string
		a    Action
	}{
		{"insert", NewInsert(3, "hi")},
		{"delete", NewDelete(1, 4)},
		{"replace", NewReplace(1, 4, "xyz")},
		{"set selection", NewSetSelection([]SelectionRange{{Anchor: 0, Head: 2}})},
		{"undo", NewUndo()},
		{"load chunk", NewLoadChunk(2, []byte{0xDE, 0xAD, 0xBE, 0xEF})},
		{"apply remote", NewApplyRemote([]RemoteChange{{Kind: RemoteInsert, Start: 1, Text: "z"}})},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			data, err := json.Marshal(tc.a)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			var got Action
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got.Type != tc.a.Type {
				t.Fatalf("Type = %v, want %v", got.Type, tc.a.Type)
			}
		})
	}
}

func TestLoadChunkBase64RoundTrip(t *testing.T) {
	want := []byte{0, 1, 2, 255, 254}
	a := NewLoadChunk(7, want)
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var got Action
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if string(got.Data) != string(want) {
		t.Fatalf("Data = %v, want %v", got.Data, want)
	}
}

func TestUnmarshalRejectsUnknownType(t *testing.T) {
	var a Action
	err := json.Unmarshal([]byte(`{"type":"NONSENSE"}`), &a)
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("err = %v, want errs.ErrInvalidInput", err)
	}
}

func TestUnmarshalRejectsMissingField(t *testing.T) {
	var a Action
	err := json.Unmarshal([]byte(`{"type":"INSERT","text":"hi"}`), &a)
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("err = %v, want errs.ErrInvalidInput", err)
	}
}

func TestUnmarshalRejectsMistypedField(t *testing.T) {
	var a Action
	err := json.Unmarshal([]byte(`{"type":"DELETE","start":"zero","end":3}`), &a)
	if !errors.Is(err, errs.ErrInvalidInput) {
		t.Fatalf("err = %v, want errs.ErrInvalidInput", err)
	}
}
