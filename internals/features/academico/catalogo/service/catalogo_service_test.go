// file: internals/features/academico/catalogo/service/catalogo_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func nuevoCatalogoMock(t *testing.T) (*CatalogoService, sqlmock.Sqlmock) {
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

	return NewCatalogoService(db), mock
}

var columnasDef = []string{
	"componente_definicion_id",
	"componente_definicion_tipo_materia",
	"componente_definicion_nombre",
	"componente_definicion_valor_maximo",
	"componente_definicion_orden",
	"componente_definicion_activo",
}

func filasTeorica() *sqlmock.Rows {
	return sqlmock.NewRows(columnasDef).
		AddRow(uuid.New().String(), "Teorica", "Tareas", "40", 1, true).
		AddRow(uuid.New().String(), "Teorica", "ExamenesTeoricos", "25", 2, true)
}

func TestComponentesPorTipoMateria_ReadThroughYCache(t *testing.T) {
	svc, mock := nuevoCatalogoMock(t)
	ctx := context.Background()

	// Primera llamada: va a la DB.
	mock.ExpectQuery(`SELECT \* FROM "componente_definiciones"`).
		WillReturnRows(filasTeorica())

	defs, err := svc.ComponentesPorTipoMateria(ctx, "Teorica")
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "Tareas", defs[0].ComponenteDefinicionNombre)
	assert.Equal(t, "ExamenesTeoricos", defs[1].ComponenteDefinicionNombre)

	// Segunda llamada: snapshot cacheado, sin query.
	defs2, err := svc.ComponentesPorTipoMateria(ctx, "Teorica")
	require.NoError(t, err)
	assert.Len(t, defs2, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComponentesPorTipoMateria_InvalidarFuerzaRecarga(t *testing.T) {
	svc, mock := nuevoCatalogoMock(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "componente_definiciones"`).
		WillReturnRows(filasTeorica())
	_, err := svc.ComponentesPorTipoMateria(ctx, "Teorica")
	require.NoError(t, err)

	svc.Invalidar("Teorica")

	// Tras invalidar, la siguiente lectura vuelve a la DB.
	mock.ExpectQuery(`SELECT \* FROM "componente_definiciones"`).
		WillReturnRows(filasTeorica())
	_, err = svc.ComponentesPorTipoMateria(ctx, "Teorica")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComponentesPorTipoMateria_TipoDesconocidoEsListaVacia(t *testing.T) {
	svc, mock := nuevoCatalogoMock(t)

	// Materia legacy sin esquema configurado: lista vacía, no error.
	mock.ExpectQuery(`SELECT \* FROM "componente_definiciones"`).
		WillReturnRows(sqlmock.NewRows(columnasDef))

	defs, err := svc.ComponentesPorTipoMateria(context.Background(), "MateriaLegacy")
	require.NoError(t, err)
	assert.Empty(t, defs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDesactivarDefinicion_InvalidaCacheDeLaMismaInstancia(t *testing.T) {
	svc, mock := nuevoCatalogoMock(t)
	ctx := context.Background()
	id := uuid.New()

	// Snapshot cacheado por la ruta de captura.
	mock.ExpectQuery(`SELECT \* FROM "componente_definiciones"`).
		WillReturnRows(sqlmock.NewRows(columnasDef).
			AddRow(id.String(), "Teorica", "Tareas", "40", 1, true).
			AddRow(uuid.New().String(), "Teorica", "ExamenesTeoricos", "25", 2, true))
	defs, err := svc.ComponentesPorTipoMateria(ctx, "Teorica")
	require.NoError(t, err)
	require.Len(t, defs, 2)

	// Escritura admin sobre el MISMO service compartido del proceso.
	mock.ExpectQuery(`SELECT \* FROM "componente_definiciones"`).
		WillReturnRows(sqlmock.NewRows(columnasDef).
			AddRow(id.String(), "Teorica", "Tareas", "40", 1, true))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "componente_definiciones" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()
	require.NoError(t, svc.DesactivarDefinicion(ctx, id.String()))

	// La siguiente validación recarga y ya no ve el componente desactivado.
	mock.ExpectQuery(`SELECT \* FROM "componente_definiciones"`).
		WillReturnRows(sqlmock.NewRows(columnasDef).
			AddRow(uuid.New().String(), "Teorica", "ExamenesTeoricos", "25", 2, true))
	defs, err = svc.ComponentesPorTipoMateria(ctx, "Teorica")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "ExamenesTeoricos", defs[0].ComponenteDefinicionNombre)
	assert.NoError(t, mock.ExpectationsWereMet())
}
