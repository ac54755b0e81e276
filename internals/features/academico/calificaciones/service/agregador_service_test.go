// file: internals/features/academico/calificaciones/service/agregador_service_test.go
package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogoModel "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/model"
)

func defsTeorica() []catalogoModel.ComponenteDefinicionModel {
	mk := func(nombre string, max int64, orden int, activo bool) catalogoModel.ComponenteDefinicionModel {
		return catalogoModel.ComponenteDefinicionModel{
			ComponenteDefinicionTipoMateria: "Teorica",
			ComponenteDefinicionNombre:      nombre,
			ComponenteDefinicionValorMaximo: decimal.NewFromInt(max),
			ComponenteDefinicionOrden:       orden,
			ComponenteDefinicionActivo:      activo,
		}
	}
	return []catalogoModel.ComponenteDefinicionModel{
		mk("Tareas", 40, 1, true),
		mk("ExamenesTeoricos", 25, 2, true),
		mk("Exposiciones", 20, 3, true),
		mk("Participacion", 15, 4, true),
		mk("ComponenteViejo", 30, 5, false), // desactivado
	}
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestValidarYCalcular_CapturaCompleta(t *testing.T) {
	valores := map[string]decimal.Decimal{
		"Tareas":           dec("35"),
		"ExamenesTeoricos": dec("20"),
		"Exposiciones":     dec("15"),
		"Participacion":    dec("10"),
	}

	validados, total, err := ValidarYCalcular(defsTeorica(), valores)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("80")), "total = %s", total)
	assert.Len(t, validados, 4)
	assert.True(t, validados["Tareas"].Equal(dec("35")))
}

func TestValidarYCalcular_AusenciaNoEsCero(t *testing.T) {
	// Solo dos componentes capturados: los demás quedan ausentes,
	// el total refleja únicamente lo capturado.
	valores := map[string]decimal.Decimal{
		"Tareas":        dec("12.5"),
		"Participacion": dec("7.25"),
	}

	validados, total, err := ValidarYCalcular(defsTeorica(), valores)
	require.NoError(t, err)
	assert.Len(t, validados, 2)
	assert.True(t, total.Equal(dec("19.75")), "total = %s", total)
}

func TestValidarYCalcular_ComponenteDesconocido(t *testing.T) {
	_, _, err := ValidarYCalcular(defsTeorica(), map[string]decimal.Decimal{
		"Laboratorios": dec("10"),
	})

	ev, ok := EsErrorValidacion(err)
	require.True(t, ok)
	assert.Equal(t, ComponenteDesconocido, ev.Tipo)
	assert.Equal(t, "Laboratorios", ev.Componente)
}

func TestValidarYCalcular_ComponenteDesactivadoEsDesconocido(t *testing.T) {
	_, _, err := ValidarYCalcular(defsTeorica(), map[string]decimal.Decimal{
		"ComponenteViejo": dec("5"),
	})

	ev, ok := EsErrorValidacion(err)
	require.True(t, ok)
	assert.Equal(t, ComponenteDesconocido, ev.Tipo)
}

func TestValidarYCalcular_FueraDeRango(t *testing.T) {
	casos := []struct {
		nombre string
		valor  string
	}{
		{"Tareas", "40.01"},  // sobre el máximo
		{"Tareas", "-0.01"},  // negativo
		{"Participacion", "100"},
	}

	for _, c := range casos {
		_, _, err := ValidarYCalcular(defsTeorica(), map[string]decimal.Decimal{
			c.nombre: dec(c.valor),
		})

		ev, ok := EsErrorValidacion(err)
		require.True(t, ok, "caso %s=%s", c.nombre, c.valor)
		assert.Equal(t, ValorFueraDeRango, ev.Tipo)
		assert.Equal(t, c.nombre, ev.Componente)
	}
}

func TestValidarYCalcular_TotalExcedeMaximo(t *testing.T) {
	// Catálogo mal configurado: los máximos suman más de 100.
	defs := []catalogoModel.ComponenteDefinicionModel{
		{
			ComponenteDefinicionNombre:      "ParteA",
			ComponenteDefinicionValorMaximo: decimal.NewFromInt(60),
			ComponenteDefinicionActivo:      true,
		},
		{
			ComponenteDefinicionNombre:      "ParteB",
			ComponenteDefinicionValorMaximo: decimal.NewFromInt(60),
			ComponenteDefinicionActivo:      true,
		},
	}

	_, _, err := ValidarYCalcular(defs, map[string]decimal.Decimal{
		"ParteA": dec("60"),
		"ParteB": dec("60"),
	})

	ev, ok := EsErrorValidacion(err)
	require.True(t, ok)
	assert.Equal(t, TotalExcedeMaximo, ev.Tipo)
	assert.True(t, ev.Valor.Equal(dec("120")))
}

func TestValidarYCalcular_RedondeoDosDecimales(t *testing.T) {
	valores := map[string]decimal.Decimal{
		"Tareas":        dec("10.005"), // → 10.01 (half-up)
		"Participacion": dec("5.004"),  // → 5.00
	}

	validados, total, err := ValidarYCalcular(defsTeorica(), valores)
	require.NoError(t, err)
	assert.True(t, validados["Tareas"].Equal(dec("10.01")))
	assert.True(t, validados["Participacion"].Equal(dec("5")))
	assert.True(t, total.Equal(dec("15.01")), "total = %s", total)
}

func TestValidarYCalcular_InvarianteSumaIgualTotal(t *testing.T) {
	valores := map[string]decimal.Decimal{
		"Tareas":           dec("33.33"),
		"ExamenesTeoricos": dec("24.99"),
		"Exposiciones":     dec("0.01"),
	}

	validados, total, err := ValidarYCalcular(defsTeorica(), valores)
	require.NoError(t, err)

	suma := decimal.Zero
	for _, v := range validados {
		suma = suma.Add(v)
	}
	assert.True(t, suma.Equal(total), "suma=%s total=%s", suma, total)
}
