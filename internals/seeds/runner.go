package seeds

import (
	academico "github.com/NaomiC0desArt/SIRGA-sub001/internals/seeds/academico"

	"gorm.io/gorm"
)

func RunAllSeeds(db *gorm.DB) {
	//* Catálogo de componentes de calificación
	academico.SeedCatalogoComponentes(db)
}
