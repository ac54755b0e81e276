// file: internals/seeds/academico/catalogo_seed.go
package academico

import (
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/model"
)

/* ========================================================
   Seed del catálogo de componentes por tipo de materia.
   Se provisiona una vez en el deploy; los máximos por tipo
   suman 100 (el agregador igual se defiende si no).
======================================================== */

type defSeed struct {
	Nombre string
	Maximo int64
	Orden  int
}

var catalogoPorTipo = map[string][]defSeed{
	"Teorica": {
		{"Tareas", 40, 1},
		{"ExamenesTeoricos", 25, 2},
		{"Exposiciones", 20, 3},
		{"Participacion", 15, 4},
	},
	"Practica": {
		{"Practicas", 50, 1},
		{"Proyectos", 30, 2},
		{"Participacion", 20, 3},
	},
	"TeoricoPractica": {
		{"Tareas", 25, 1},
		{"Practicas", 25, 2},
		{"Examenes", 30, 3},
		{"Participacion", 20, 4},
	},
}

func SeedCatalogoComponentes(db *gorm.DB) {
	for tipo, defs := range catalogoPorTipo {
		for _, d := range defs {
			row := model.ComponenteDefinicionModel{
				ComponenteDefinicionTipoMateria: tipo,
				ComponenteDefinicionNombre:      d.Nombre,
				ComponenteDefinicionValorMaximo: decimal.NewFromInt(d.Maximo),
				ComponenteDefinicionOrden:       d.Orden,
				ComponenteDefinicionActivo:      true,
			}

			err := db.
				Where(`componente_definicion_tipo_materia = ?
				   AND componente_definicion_nombre = ?
				   AND componente_definicion_activo = TRUE`,
					tipo, d.Nombre).
				FirstOrCreate(&row).Error
			if err != nil {
				log.Printf("❌ Seed catálogo %s/%s: %v", tipo, d.Nombre, err)
			}
		}
		log.Printf("✅ Catálogo sembrado para tipo de materia %s (%d componentes)", tipo, len(defs))
	}
}
