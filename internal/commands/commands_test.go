package commands

import (
	"testing"
)

func TestParse_NonSlashCommand(t *testing.T) {
	tests := []string{
		"hello world",
		"",
		"   ",
		"help",
		"show me P001",
		"this is not a command",
	}

	for _, input := range tests {
		result := Parse(input)
		if result != nil {
			t.Errorf("Parse(%q) = %v, want nil", input, result)
		}
	}
}

func TestParse_Help(t *testing.T) {
	tests := []string{
		"/help",
		"/HELP",
		"/Help",
		"  /help  ",
		"/help extra args ignored",
	}

	for _, input := range tests {
		result := Parse(input)
		if result == nil {
			t.Errorf("Parse(%q) = nil, want Help{}", input)
			continue
		}
		if _, ok := result.(Help); !ok {
			t.Errorf("Parse(%q) = %T, want Help", input, result)
		}
		if result.Type() != "help" {
			t.Errorf("Parse(%q).Type() = %q, want %q", input, result.Type(), "help")
		}
	}
}

func TestParse_Patients(t *testing.T) {
	result := Parse("/patients")
	if _, ok := result.(ListPatients); !ok {
		t.Errorf("Parse(/patients) = %T, want ListPatients", result)
	}
}

func TestParse_Patient(t *testing.T) {
	tests := []struct {
		input          string
		wantIdentifier string
		wantErr        bool
	}{
		{"/patient P001", "P001", false},
		{"/patient Luna", "Luna", false},
		{"/patient Mr Whiskers", "Mr Whiskers", false},
		{"/patient", "", true},
		{"/patient   ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Parse(tt.input)
			if tt.wantErr {
				if _, ok := result.(ParseError); !ok {
					t.Errorf("Parse(%q) = %T, want ParseError", tt.input, result)
				}
				return
			}
			sp, ok := result.(ShowPatient)
			if !ok {
				t.Fatalf("Parse(%q) = %T, want ShowPatient", tt.input, result)
			}
			if sp.Identifier != tt.wantIdentifier {
				t.Errorf("identifier = %q, want %q", sp.Identifier, tt.wantIdentifier)
			}
		})
	}
}

func TestParse_AddPatient(t *testing.T) {
	tests := []struct {
		input   string
		want    AddPatient
		wantErr bool
	}{
		{input: "/add Bella Cat", want: AddPatient{Name: "Bella", Species: "Cat"}},
		{input: "/add Bella Cat Maine Coon", want: AddPatient{Name: "Bella", Species: "Cat", Breed: "Maine Coon"}},
		{input: "/add Bella", wantErr: true},
		{input: "/add", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Parse(tt.input)
			if tt.wantErr {
				if _, ok := result.(ParseError); !ok {
					t.Errorf("Parse(%q) = %T, want ParseError", tt.input, result)
				}
				return
			}
			ap, ok := result.(AddPatient)
			if !ok {
				t.Fatalf("Parse(%q) = %T, want AddPatient", tt.input, result)
			}
			if ap != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, ap, tt.want)
			}
		})
	}
}

func TestParse_Clear(t *testing.T) {
	for _, input := range []string{"/clear", "/CLEAR", "  /clear  "} {
		result := Parse(input)
		if _, ok := result.(Clear); !ok {
			t.Errorf("Parse(%q) = %T, want Clear", input, result)
		}
	}
}

func TestParse_Export(t *testing.T) {
	result := Parse("/export")
	if _, ok := result.(Export); !ok {
		t.Errorf("Parse(/export) = %T, want Export", result)
	}
}

func TestParse_Quit(t *testing.T) {
	for _, input := range []string{"/quit", "/exit", "/QUIT"} {
		result := Parse(input)
		if _, ok := result.(Quit); !ok {
			t.Errorf("Parse(%q) = %T, want Quit", input, result)
		}
	}
}

func TestParse_Unknown(t *testing.T) {
	result := Parse("/frobnicate")
	perr, ok := result.(ParseError)
	if !ok {
		t.Fatalf("Parse(/frobnicate) = %T, want ParseError", result)
	}
	if perr.Message == "" {
		t.Error("ParseError should carry a message")
	}
}
