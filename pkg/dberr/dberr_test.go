package dberr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestTranslateNil(t *testing.T) {
	if got := Translate(nil); got != nil {
		t.Fatalf("Translate(nil): expected nil, got %v", got)
	}
}

func TestTranslateRecordNotFound(t *testing.T) {
	err := Translate(gorm.ErrRecordNotFound)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("original error lost: %v", err)
	}
}

func TestTranslatePgCodes(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"23505", ErrConflict},
		{"23503", ErrConflict},
		{"23514", ErrValidation},
		{"23502", ErrValidation},
		{"22P02", ErrValidation},
		{"40001", ErrTransient},
		{"40P01", ErrTransient},
		{"53300", ErrConnection},
		{"57P01", ErrConnection},
		{"08006", ErrConnection},
	}
	for _, tc := range cases {
		err := Translate(&pgconn.PgError{Code: tc.code})
		if !errors.Is(err, tc.want) {
			t.Fatalf("code %s: expected %v, got %v", tc.code, tc.want, err)
		}
		var pgErr *pgconn.PgError
		if !errors.As(err, &pgErr) || pgErr.Code != tc.code {
			t.Fatalf("code %s: driver error not reachable via errors.As", tc.code)
		}
	}
}

func TestTranslateContextErrors(t *testing.T) {
	if err := Translate(context.DeadlineExceeded); !errors.Is(err, ErrConnection) {
		t.Fatalf("deadline: expected ErrConnection, got %v", err)
	}
	if err := Translate(context.Canceled); !errors.Is(err, ErrConnection) {
		t.Fatalf("canceled: expected ErrConnection, got %v", err)
	}
}

func TestTranslateIdempotent(t *testing.T) {
	err := NotFound(fmt.Errorf("row gone"))
	if got := Translate(err); got != err {
		t.Fatalf("already-classified error was rewrapped: %v", got)
	}
}

func TestTranslatePassesThroughUnknown(t *testing.T) {
	err := errors.New("something else")
	if got := Translate(err); got != err {
		t.Fatalf("unknown error was rewrapped: %v", got)
	}
}

func TestErrorMessage(t *testing.T) {
	err := Conflict(fmt.Errorf("duplicate name"))
	if err.Error() != "conflict: duplicate name" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}
