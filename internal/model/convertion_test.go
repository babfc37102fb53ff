package model

import (
	"context"
	"fmt"
	"testing"

	"github.com/creatorhq/backend/internal/entity"
	"github.com/creatorhq/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

type recordLogger struct {
	warnings []string
}

func (l *recordLogger) Debugf(string, ...any) {}
func (l *recordLogger) Infof(string, ...any)  {}
func (l *recordLogger) Errorf(string, ...any) {}

func (l *recordLogger) Warnf(msg string, a ...any) {
	l.warnings = append(l.warnings, fmt.Sprintf(msg, a...))
}

func TestConvertQuestAssignment(t *testing.T) {
	tests := []struct {
		name         string
		data         entity.Map
		wantWord     string
		wantWarnings int
	}{
		{
			name:     "word of the day",
			data:     entity.Map{"custom_word": "serendipity", "custom_word_description": "a happy accident"},
			wantWord: "serendipity",
		},
		{
			name: "no data",
		},
		{
			name:         "invalid data",
			data:         entity.Map{"custom_word": []int{1, 2}},
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &recordLogger{}
			ctx := xcontext.WithLogger(context.Background(), logger)

			got := ConvertQuestAssignment(ctx, &entity.QuestAssignment{
				Base:      entity.Base{ID: "assignment1"},
				QuestID:   "daily1",
				StartDate: "2024-02-29",
				EndDate:   "2024-02-29",
				Data:      tt.data,
			})
			require.NotNil(t, got)
			require.Equal(t, "assignment1", got.ID)
			require.Equal(t, tt.wantWord, got.CustomWord)
			require.Len(t, logger.warnings, tt.wantWarnings)
		})
	}

	require.Nil(t, ConvertQuestAssignment(context.Background(), nil))
}
