// file: internals/features/academico/calificaciones/service/anual_service.go
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/calificaciones/model"
)

/* ========================================================
   Consolidado anual
   Read-model derivado: NO se persiste. Se arma al vuelo con
   los registros P1..P4 de (estudiante, materia, curso, año).
======================================================== */

// NotaAnual: P1..P4 son nil si el periodo aún no fue capturado — un periodo
// sin nota NO es un cero. Completo solo con los cuatro periodos presentes.
type NotaAnual struct {
	P1       *decimal.Decimal
	P2       *decimal.Decimal
	P3       *decimal.Decimal
	P4       *decimal.Decimal
	Total    *decimal.Decimal
	Completo bool
}

// CalcularNotaAnual compone los totales por periodo disponibles.
//
// Política anual (decisión documentada): promedio aritmético simple de los
// periodos capturados, redondeado a 2 decimales. No exige año completo:
// con menos de 4 periodos devuelve el promedio parcial y Completo=false.
// Sin ningún periodo, Total es nil.
func CalcularNotaAnual(porPeriodo map[int]decimal.Decimal) NotaAnual {
	var res NotaAnual

	asignar := func(n int, destino **decimal.Decimal) {
		if v, ok := porPeriodo[n]; ok {
			c := v
			*destino = &c
		}
	}
	asignar(1, &res.P1)
	asignar(2, &res.P2)
	asignar(3, &res.P3)
	asignar(4, &res.P4)

	suma := decimal.Zero
	n := 0
	for _, v := range porPeriodo {
		suma = suma.Add(v)
		n++
	}
	if n > 0 {
		prom := Redondear(suma.Div(decimal.NewFromInt(int64(n))))
		res.Total = &prom
	}
	res.Completo = res.P1 != nil && res.P2 != nil && res.P3 != nil && res.P4 != nil
	return res
}

// NotaAnual consulta hasta 4 registros PUBLICADOS (periodos 1..4) y delega
// el cálculo a la política pura de arriba. Los borradores no cuentan: el
// consolidado es sobre notas oficiales.
func (s *CalificacionService) NotaAnual(ctx context.Context, estudianteID, materiaID, cursoID, anioEscolarID uuid.UUID) (NotaAnual, error) {
	var regs []model.CalificacionModel
	if err := s.DB.WithContext(ctx).
		Where(`calificacion_estudiante_id = ?
		   AND calificacion_materia_id = ?
		   AND calificacion_curso_id = ?
		   AND calificacion_anio_escolar_id = ?
		   AND calificacion_publicada = TRUE
		   AND calificacion_periodo_numero BETWEEN 1 AND 4`,
			estudianteID, materiaID, cursoID, anioEscolarID).
		Find(&regs).Error; err != nil {
		return NotaAnual{}, err
	}

	porPeriodo := make(map[int]decimal.Decimal, len(regs))
	for _, r := range regs {
		porPeriodo[r.CalificacionPeriodoNumero] = r.CalificacionTotal
	}
	return CalcularNotaAnual(porPeriodo), nil
}
