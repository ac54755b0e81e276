// file: internals/features/academico/calificaciones/service/calificacion_service_test.go
package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	catalogoService "github.com/NaomiC0desArt/SIRGA-sub001/internals/features/academico/catalogo/service"
)

/* ========================================================
   DB mock — los invariantes de estado (borrador vs publicada)
   se prueban contra GORM sin Postgres real.
======================================================== */

func nuevaDBMock(t *testing.T) (*CalificacionService, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	return NewCalificacionService(db, catalogoService.NewCatalogoService(db)), mock
}

var columnasCalificacion = []string{
	"calificacion_id",
	"calificacion_estudiante_id",
	"calificacion_materia_id",
	"calificacion_periodo_id",
	"calificacion_curso_id",
	"calificacion_docente_id",
	"calificacion_anio_escolar_id",
	"calificacion_periodo_numero",
	"calificacion_tipo_materia",
	"calificacion_total",
	"calificacion_publicada",
}

func filaCalificacion(id uuid.UUID, publicada bool, total string) *sqlmock.Rows {
	return sqlmock.NewRows(columnasCalificacion).AddRow(
		id.String(),
		uuid.New().String(),
		uuid.New().String(),
		uuid.New().String(),
		uuid.New().String(),
		uuid.New().String(),
		uuid.New().String(),
		1,
		"Teorica",
		total,
		publicada,
	)
}

func TestPorClaveNatural_NoEncontrada(t *testing.T) {
	svc, mock := nuevaDBMock(t)

	mock.ExpectQuery(`SELECT \* FROM "calificaciones"`).
		WillReturnRows(sqlmock.NewRows(columnasCalificacion))

	_, err := svc.PorClaveNatural(context.Background(), uuid.New(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNoEncontrada)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEliminarBorrador_RechazaPublicada(t *testing.T) {
	svc, mock := nuevaDBMock(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "calificaciones" .* FOR UPDATE`).
		WillReturnRows(filaCalificacion(id, true, "80"))
	mock.ExpectRollback()

	err := svc.EliminarBorrador(context.Background(), id)
	assert.ErrorIs(t, err, ErrEliminarPublicada)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicarUna_NoEncontrada(t *testing.T) {
	svc, mock := nuevaDBMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "calificaciones" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(columnasCalificacion))
	mock.ExpectRollback()

	_, err := svc.PublicarUna(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNoEncontrada)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicarUna_IdempotenteSobrePublicada(t *testing.T) {
	svc, mock := nuevaDBMock(t)
	id := uuid.New()

	// Ya publicada: no-op — ningún UPDATE, no se re-estampa publicada_en.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "calificaciones" .* FOR UPDATE`).
		WillReturnRows(filaCalificacion(id, true, "80"))
	mock.ExpectCommit()

	cal, err := svc.PublicarUna(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, cal.CalificacionPublicada)
	assert.True(t, cal.CalificacionTotal.Equal(decimal.NewFromInt(80)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPublicarUna_RechazaRegistroVacio(t *testing.T) {
	svc, mock := nuevaDBMock(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "calificaciones" .* FOR UPDATE`).
		WillReturnRows(filaCalificacion(id, false, "0"))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "calificacion_detalles"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectRollback()

	_, err := svc.PublicarUna(context.Background(), id)
	assert.ErrorIs(t, err, ErrSinComponentes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditarPublicada_RechazaBorrador(t *testing.T) {
	svc, mock := nuevaDBMock(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "calificaciones" .* FOR UPDATE`).
		WillReturnRows(filaCalificacion(id, false, "50"))
	mock.ExpectRollback()

	_, _, err := svc.EditarPublicada(
		context.Background(), id,
		map[string]decimal.Decimal{"Tareas": decimal.NewFromInt(38)},
		Editor{ID: uuid.New(), Nombre: "Ana Pérez", Rol: "coordinador"},
		"Corrección tras segunda revisión",
	)
	assert.ErrorIs(t, err, ErrNoPublicada)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditarPublicada_ExigeJustificacion(t *testing.T) {
	svc, mock := nuevaDBMock(t)

	// La política de auditoría corta antes de tocar la DB.
	casos := []string{"", "corta", "         "}
	for _, justificacion := range casos {
		_, _, err := svc.EditarPublicada(
			context.Background(), uuid.New(),
			map[string]decimal.Decimal{"Tareas": decimal.NewFromInt(38)},
			Editor{ID: uuid.New(), Nombre: "Ana Pérez", Rol: "coordinador"},
			justificacion,
		)
		assert.ErrorIs(t, err, ErrJustificacionInvalida, "justificacion=%q", justificacion)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* ========================================================
   Captura y recaptura
======================================================== */

func filasCatalogoTeorica() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"componente_definicion_id",
		"componente_definicion_tipo_materia",
		"componente_definicion_nombre",
		"componente_definicion_valor_maximo",
		"componente_definicion_orden",
		"componente_definicion_activo",
	}).AddRow(uuid.New().String(), "Teorica", "Tareas", "40", 1, true)
}

func contextoTeorica() ContextoCaptura {
	return ContextoCaptura{
		MateriaID:     uuid.New(),
		CursoID:       uuid.New(),
		PeriodoID:     uuid.New(),
		AnioEscolarID: uuid.New(),
		DocenteID:     uuid.New(),
		PeriodoNumero: 2,
		TipoMateria:   "Teorica",
	}
}

func TestUpsertBorrador_RechazaPublicada(t *testing.T) {
	svc, mock := nuevaDBMock(t)
	cc := contextoTeorica()

	mock.ExpectQuery(`SELECT \* FROM "componente_definiciones"`).
		WillReturnRows(filasCatalogoTeorica())
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "calificaciones" .* FOR UPDATE`).
		WillReturnRows(filaCalificacion(uuid.New(), true, "80"))
	mock.ExpectRollback()

	_, err := svc.UpsertBorrador(context.Background(), cc, EntradaCaptura{
		EstudianteID: uuid.New(),
		Valores:      map[string]decimal.Decimal{"Tareas": decimal.NewFromInt(30)},
	})
	assert.ErrorIs(t, err, ErrYaPublicada)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertBorrador_RecapturaRefrescaContexto(t *testing.T) {
	svc, mock := nuevaDBMock(t)
	cc := contextoTeorica()
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "componente_definiciones"`).
		WillReturnRows(filasCatalogoTeorica())
	mock.ExpectBegin()
	// Borrador existente con coordenadas viejas (curso/año aleatorios de la fila).
	mock.ExpectQuery(`SELECT \* FROM "calificaciones" .* FOR UPDATE`).
		WillReturnRows(filaCalificacion(id, false, "10"))
	mock.ExpectExec(`DELETE FROM "calificacion_detalles"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "calificaciones" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "calificacion_detalles"`).
		WillReturnRows(sqlmock.NewRows([]string{"calificacion_detalle_id"}).
			AddRow(uuid.New().String()))
	mock.ExpectCommit()

	cal, err := svc.UpsertBorrador(context.Background(), cc, EntradaCaptura{
		EstudianteID: uuid.New(),
		Valores:      map[string]decimal.Decimal{"Tareas": decimal.NewFromInt(30)},
	})
	require.NoError(t, err)

	// La recaptura adopta las coordenadas del contexto actual, no las del
	// borrador viejo.
	assert.Equal(t, cc.CursoID, cal.CalificacionCursoID)
	assert.Equal(t, cc.AnioEscolarID, cal.CalificacionAnioEscolarID)
	assert.Equal(t, cc.PeriodoNumero, cal.CalificacionPeriodoNumero)
	assert.Equal(t, cc.DocenteID, cal.CalificacionDocenteID)
	assert.True(t, cal.CalificacionTotal.Equal(decimal.NewFromInt(30)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* ========================================================
   Borrado físico de borradores
======================================================== */

func TestEliminarBorrador_BorradoFisicoLiberaClave(t *testing.T) {
	svc, mock := nuevaDBMock(t)
	id := uuid.New()

	// El borrado es un DELETE real, no un flag: la clave natural
	// (estudiante, materia, periodo) queda libre en el índice único y una
	// captura posterior del mismo estudiante vuelve a funcionar.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "calificaciones" .* FOR UPDATE`).
		WillReturnRows(filaCalificacion(id, false, "40"))
	mock.ExpectExec(`DELETE FROM "calificacion_detalles"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "calificaciones"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, svc.EliminarBorrador(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

/* ========================================================
   Edición auditada — historial completo
======================================================== */

var columnasDetalle = []string{
	"calificacion_detalle_id",
	"calificacion_detalle_calificacion_id",
	"calificacion_detalle_componente_id",
	"calificacion_detalle_nombre_componente",
	"calificacion_detalle_valor",
}

func TestEditarPublicada_EscribeUnaEntradaDeHistorial(t *testing.T) {
	svc, mock := nuevaDBMock(t)
	id := uuid.New()
	editor := Editor{ID: uuid.New(), Nombre: "Ana Pérez", Rol: "coordinador"}
	ctx := context.Background()

	// Catálogo cacheado de antemano (instancia compartida del proceso).
	mock.ExpectQuery(`SELECT \* FROM "componente_definiciones"`).
		WillReturnRows(filasCatalogoTeorica())
	_, err := svc.Catalogo.ComponentesPorTipoMateria(ctx, "Teorica")
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "calificaciones" .* FOR UPDATE`).
		WillReturnRows(filaCalificacion(id, true, "30"))
	mock.ExpectQuery(`SELECT \* FROM "calificacion_detalles"`).
		WillReturnRows(sqlmock.NewRows(columnasDetalle).
			AddRow(uuid.New().String(), id.String(), uuid.New().String(), "Tareas", "30"))
	mock.ExpectExec(`DELETE FROM "calificacion_detalles"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "calificacion_detalles"`).
		WillReturnRows(sqlmock.NewRows([]string{"calificacion_detalle_id"}).
			AddRow(uuid.New().String()))
	mock.ExpectQuery(`INSERT INTO "historial_calificaciones"`).
		WillReturnRows(sqlmock.NewRows([]string{"historial_calificacion_id"}).
			AddRow(uuid.New().String()))
	mock.ExpectExec(`UPDATE "calificaciones" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	cal, entrada, err := svc.EditarPublicada(
		ctx, id,
		map[string]decimal.Decimal{"Tareas": decimal.NewFromInt(35)},
		editor,
		"Corrección tras revisión del acta de periodo",
	)
	require.NoError(t, err)

	// Exactamente UN INSERT al historial (las expectativas ordenadas no
	// admiten otro), con el snapshot antes/después de la fusión aplicada.
	assert.JSONEq(t, `{"Tareas":"30"}`, string(entrada.HistorialCalificacionValoresAntes))
	assert.JSONEq(t, `{"Tareas":"35"}`, string(entrada.HistorialCalificacionValoresDespues))
	assert.True(t, entrada.HistorialCalificacionTotalAntes.Equal(decimal.NewFromInt(30)))
	assert.True(t, entrada.HistorialCalificacionTotalDespues.Equal(decimal.NewFromInt(35)))
	assert.Equal(t, editor.ID, entrada.HistorialCalificacionEditorID)
	assert.Equal(t, "coordinador", entrada.HistorialCalificacionEditorRol)
	assert.True(t, cal.CalificacionTotal.Equal(decimal.NewFromInt(35)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEditarPublicada_JustificacionCuentaRunas(t *testing.T) {
	svc, mock := nuevaDBMock(t)

	// 9 runas con tilde (18 bytes): corta, aunque pase de 10 bytes.
	_, _, err := svc.EditarPublicada(
		context.Background(), uuid.New(),
		map[string]decimal.Decimal{"Tareas": decimal.NewFromInt(38)},
		Editor{ID: uuid.New(), Nombre: "Ana Pérez", Rol: "coordinador"},
		strings.Repeat("á", 9),
	)
	assert.ErrorIs(t, err, ErrJustificacionInvalida)

	// 500 runas con tilde (1000 bytes): la política acepta y se llega a la
	// DB — el mismo conteo que el validator del DTO.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "calificaciones" .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(columnasCalificacion))
	mock.ExpectRollback()

	_, _, err = svc.EditarPublicada(
		context.Background(), uuid.New(),
		map[string]decimal.Decimal{"Tareas": decimal.NewFromInt(38)},
		Editor{ID: uuid.New(), Nombre: "Ana Pérez", Rol: "coordinador"},
		strings.Repeat("á", 500),
	)
	assert.ErrorIs(t, err, ErrNoEncontrada)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecortarObs_CorteSeguroUTF8(t *testing.T) {
	obs := strings.Repeat("ñ", 510)
	out := recortarObs(&obs)
	require.NotNil(t, out)
	assert.True(t, utf8.ValidString(*out))
	assert.Equal(t, 500, utf8.RuneCountInString(*out))
}
