package model_test

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/diillson/ponto-eletronico-go/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var horaPattern = regexp.MustCompile(`^\d{2}-\d{2}-\d{4} \d{2}:\d{2}:\d{2}$`)

func TestParsePunchType(t *testing.T) {
	valid := map[string]model.PunchType{
		"entrada":  model.PunchEntrada,
		"Entrada":  model.PunchEntrada,
		"SAIDA":    model.PunchSaida,
		"checkin":  model.PunchCheckIn,
		"CHECKIN":  model.PunchCheckIn,
		"checkout": model.PunchCheckOut,
		"CheckOut": model.PunchCheckOut,
	}
	for raw, want := range valid {
		got, err := model.ParsePunchType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got)
	}

	for _, raw := range []string{"lunch", "", " entrada", "saída", "check-in"} {
		_, err := model.ParsePunchType(raw)
		assert.ErrorIs(t, err, model.ErrInvalidPunchType, raw)
	}
}

func TestNewPunch(t *testing.T) {
	at := time.Date(2024, time.March, 5, 8, 7, 9, 0, time.Local)
	in := model.PunchInput{
		Nome: "Ana", Email: "ana@x.com", Departamento: "TI", Cargo: "Dev", ID: "U1", Tipo: "Entrada",
	}

	p, err := model.NewPunch(in, at)
	require.NoError(t, err)

	assert.Equal(t, model.PunchEntrada, p.Type)
	assert.Equal(t, "05-03-2024 08:07:09", p.Timestamp)
	assert.Regexp(t, horaPattern, p.Timestamp)
	assert.Equal(t, "U1", p.UserID)

	_, err = model.NewPunch(model.PunchInput{Tipo: "lunch"}, at)
	assert.ErrorIs(t, err, model.ErrInvalidPunchType)
}

func TestPunch_View(t *testing.T) {
	p := &model.Punch{
		ID: 7, Name: "Ana", Email: "ana@x.com", Department: "TI", Role: "Dev",
		UserID: "U1", Type: model.PunchSaida, Timestamp: "05-03-2024 17:00:00",
	}

	data, err := json.Marshal(p.View())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"usuario": {"nome":"Ana","email":"ana@x.com","departamento":"TI","cargo":"Dev","id":"U1"},
		"tipo": "saida",
		"hora": "05-03-2024 17:00:00",
		"ponto_id": 7
	}`, string(data))
}

func TestPunchEntityRoundTrip(t *testing.T) {
	p := &model.Punch{
		ID: 3, Name: "Bia", Email: "", Department: "RH", Role: "Analista",
		UserID: "U2", Type: model.PunchCheckOut, Timestamp: "01-01-2024 00:00:00",
	}

	assert.Equal(t, p, model.PunchToEntity(p).ToModel())
	assert.Equal(t, "pontos", model.PunchEntity{}.TableName())
}
