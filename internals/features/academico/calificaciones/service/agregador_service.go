// file: internals/features/academico/calificaciones/service/agregador_service.go
package service

import (
	"github.com/shopspring/decimal"

	catalogoModel "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/model"
)

/* ========================================================
   Agregador de componentes
   Función pura sobre (snapshot del catálogo, valores crudos).
   Sin efectos secundarios; el Store decide qué persistir.
======================================================== */

// NotaMaxima: cota superior del total de un periodo.
var NotaMaxima = decimal.NewFromInt(100)

// Redondeo a 2 decimales (half-up), la convención monetaria usada en todo
// el sistema. Se aplica en un solo lugar para que la suma de detalles y el
// total nunca diverjan.
func Redondear(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ValidarYCalcular valida `valores` (nombre componente → valor crudo) contra
// las definiciones activas del catálogo y calcula el total del periodo.
//
// Reglas:
//   - cada clave debe existir como definición ACTIVA → ComponenteDesconocido
//   - 0 ≤ valor ≤ máximo de la definición → ValorFueraDeRango
//   - total = suma redondeada a 2 decimales, ≤ 100 → TotalExcedeMaximo
//     (solo puede pasar si el catálogo está mal configurado; igual se
//     defiende aquí)
//
// Componentes ausentes se toleran: ausencia ≠ cero.
// Devuelve los valores ya normalizados (redondeados) y el total.
func ValidarYCalcular(
	defs []catalogoModel.ComponenteDefinicionModel,
	valores map[string]decimal.Decimal,
) (map[string]decimal.Decimal, decimal.Decimal, error) {

	porNombre := make(map[string]*catalogoModel.ComponenteDefinicionModel, len(defs))
	for i := range defs {
		if defs[i].ComponenteDefinicionActivo {
			porNombre[defs[i].ComponenteDefinicionNombre] = &defs[i]
		}
	}

	validados := make(map[string]decimal.Decimal, len(valores))
	total := decimal.Zero

	for nombre, valor := range valores {
		def, ok := porNombre[nombre]
		if !ok {
			return nil, decimal.Zero, &ErrorValidacion{
				Tipo:       ComponenteDesconocido,
				Componente: nombre,
			}
		}

		v := Redondear(valor)
		if v.IsNegative() || v.GreaterThan(def.ComponenteDefinicionValorMaximo) {
			return nil, decimal.Zero, &ErrorValidacion{
				Tipo:       ValorFueraDeRango,
				Componente: nombre,
				Valor:      v,
				Maximo:     def.ComponenteDefinicionValorMaximo,
			}
		}

		validados[nombre] = v
		total = total.Add(v)
	}

	total = Redondear(total)
	if total.GreaterThan(NotaMaxima) {
		return nil, decimal.Zero, &ErrorValidacion{
			Tipo:   TotalExcedeMaximo,
			Valor:  total,
			Maximo: NotaMaxima,
		}
	}

	return validados, total, nil
}
