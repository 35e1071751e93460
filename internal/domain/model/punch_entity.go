package model

// PunchEntity é a representação de banco de dados de um ponto
type PunchEntity struct {
	ID           uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Nome         string `gorm:"column:nome;type:text;not null"`
	Email        string `gorm:"column:email;type:text;not null"`
	Departamento string `gorm:"column:departamento;type:text;not null"`
	Cargo        string `gorm:"column:cargo;type:text;not null"`
	IDUsuario    string `gorm:"column:id_usuario;type:text;not null"`
	Tipo         string `gorm:"column:tipo;type:text;not null"`
	Hora         string `gorm:"column:hora;type:text;not null"`
}

// TableName define o nome da tabela
func (PunchEntity) TableName() string {
	return "pontos"
}

// ToModel converte a entidade no modelo de domínio
func (e *PunchEntity) ToModel() *Punch {
	return &Punch{
		ID:         e.ID,
		Name:       e.Nome,
		Email:      e.Email,
		Department: e.Departamento,
		Role:       e.Cargo,
		UserID:     e.IDUsuario,
		Type:       PunchType(e.Tipo),
		Timestamp:  e.Hora,
	}
}

// PunchToEntity converte o modelo de domínio em entidade
func PunchToEntity(p *Punch) *PunchEntity {
	return &PunchEntity{
		ID:           p.ID,
		Nome:         p.Name,
		Email:        p.Email,
		Departamento: p.Department,
		Cargo:        p.Role,
		IDUsuario:    p.UserID,
		Tipo:         string(p.Type),
		Hora:         p.Timestamp,
	}
}
