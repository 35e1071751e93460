package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TimestampLayout é o formato da hora gravada em cada ponto (DD-MM-YYYY HH:MM:SS)
const TimestampLayout = "02-01-2006 15:04:05"

// ErrInvalidPunchType indica um tipo de ponto fora do conjunto aceito
var ErrInvalidPunchType = errors.New("tipo de ponto inválido")

// PunchType é o tipo de um ponto, sempre em minúsculas
type PunchType string

const (
	PunchEntrada  PunchType = "entrada"
	PunchSaida    PunchType = "saida"
	PunchCheckIn  PunchType = "checkin"
	PunchCheckOut PunchType = "checkout"
)

var validPunchTypes = map[PunchType]bool{
	PunchEntrada:  true,
	PunchSaida:    true,
	PunchCheckIn:  true,
	PunchCheckOut: true,
}

// ParsePunchType normaliza o valor recebido para minúsculas e valida
func ParsePunchType(raw string) (PunchType, error) {
	t := PunchType(strings.ToLower(raw))
	if !validPunchTypes[t] {
		return "", fmt.Errorf("%w: %q", ErrInvalidPunchType, raw)
	}
	return t, nil
}

// PunchInput é o corpo aceito por registrar_ponto e atualizar_ponto.
// Apenas o tipo é validado; os demais campos ausentes chegam vazios.
type PunchInput struct {
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	Departamento string `json:"departamento"`
	Cargo        string `json:"cargo"`
	ID           string `json:"id"`
	Tipo         string `json:"tipo"`
}

// Punch é a representação de domínio de um ponto registrado
type Punch struct {
	ID         uint
	Name       string
	Email      string
	Department string
	Role       string
	UserID     string
	Type       PunchType
	Timestamp  string
}

// NewPunch valida a entrada e monta um ponto carimbado com o instante informado
func NewPunch(in PunchInput, at time.Time) (*Punch, error) {
	t, err := ParsePunchType(in.Tipo)
	if err != nil {
		return nil, err
	}

	return &Punch{
		Name:       in.Nome,
		Email:      in.Email,
		Department: in.Departamento,
		Role:       in.Cargo,
		UserID:     in.ID,
		Type:       t,
		Timestamp:  FormatTimestamp(at),
	}, nil
}

// FormatTimestamp formata o instante no layout gravado na coluna hora
func FormatTimestamp(at time.Time) string {
	return at.Format(TimestampLayout)
}

// UserView é o bloco "usuario" das respostas de consulta
type UserView struct {
	Nome         string `json:"nome"`
	Email        string `json:"email"`
	Departamento string `json:"departamento"`
	Cargo        string `json:"cargo"`
	ID           string `json:"id"`
}

// PunchView é um ponto como devolvido pelas consultas
type PunchView struct {
	Usuario UserView `json:"usuario"`
	Tipo    string   `json:"tipo"`
	Hora    string   `json:"hora"`
	PontoID uint     `json:"ponto_id"`
}

// View monta a resposta aninhada de um ponto
func (p *Punch) View() PunchView {
	return PunchView{
		Usuario: UserView{
			Nome:         p.Name,
			Email:        p.Email,
			Departamento: p.Department,
			Cargo:        p.Role,
			ID:           p.UserID,
		},
		Tipo:    string(p.Type),
		Hora:    p.Timestamp,
		PontoID: p.ID,
	}
}
