package main

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestReportable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"wrapped canceled", fmt.Errorf("run: %w", context.Canceled), false},
		{"deadline", context.DeadlineExceeded, true},
		{"other", errors.New("app: no screen"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reportable(tt.err); got != tt.want {
				t.Errorf("reportable(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
