package presenter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iyunix/go-medisen/internal/domain"
	"github.com/iyunix/go-medisen/internal/services/prediction"
)

func fungal() domain.PredictionResult {
	return domain.PredictionResult{
		Disease:   "Fungal infection",
		Symptoms:  []string{"itching", "skin_rash", "nodal_skin_eruptions"},
		Specialty: "Dermatologist",
	}
}

func TestPresent_SuccessShowsCards(t *testing.T) {
	panel := Present(prediction.Snapshot{State: prediction.StateSuccess, Results: []domain.PredictionResult{fungal()}})

	assert.Equal(t, ResultsHeading, panel.Heading)
	require.Len(t, panel.Cards, 1)
	c := panel.Cards[0]
	assert.Equal(t, "Fungal infection", c.Disease)
	assert.Equal(t, "Dermatologist", c.Specialty)
	assert.Nil(t, c.Confidence)
	assert.Equal(t, []string{"itching", "skin rash", "nodal skin eruptions"}, c.Symptoms)
	assert.Equal(t, "Dermatologist", c.DoctorHint)
	assert.Contains(t, c.AssistantSeed, "Fungal infection")
}

func TestPresent_LoadingAndError(t *testing.T) {
	loading := Present(prediction.Snapshot{State: prediction.StateLoading})
	assert.Equal(t, LoadingText, loading.Status)
	assert.Empty(t, loading.Cards)

	failed := Present(prediction.Snapshot{State: prediction.StateError, Message: "Symptoms list cannot be empty."})
	assert.Equal(t, "Symptoms list cannot be empty.", failed.Error)
	assert.Empty(t, failed.Heading)
	assert.Empty(t, failed.Cards)

	empty := Present(prediction.Snapshot{State: prediction.StateSuccess})
	assert.Empty(t, empty.Heading)
}

func TestDoctorHint_FallsBackToDisease(t *testing.T) {
	r := fungal()
	r.Specialty = ""
	assert.Equal(t, "Fungal infection", DoctorHint(r))
	assert.NotContains(t, AssistantSeed(r), "usually treats")
}

func TestRenderTurn(t *testing.T) {
	h, err := RenderTurn(domain.ConversationTurn{Role: domain.RoleAssistant, Content: "**Rest** and\n\n- fluids\n- sleep"})
	require.NoError(t, err)
	assert.Contains(t, h, "<strong>Rest</strong>")
	assert.Contains(t, h, "<li>fluids</li>")

	h, err = RenderTurn(domain.ConversationTurn{Role: domain.RoleUser, Content: "<script>x</script>"})
	require.NoError(t, err)
	assert.False(t, strings.Contains(h, "<script>"))

	h, err = RenderTurn(domain.ConversationTurn{Role: domain.RoleAssistant, Content: "<script>x</script>"})
	require.NoError(t, err)
	assert.False(t, strings.Contains(h, "<script>"))
}
