package store

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-pass-locker/models"
)

const vaultRecordsTable = "vault_records"

var (
	recordColumns = []string{"id", "owner_id", "website", "username", "envelope", "created_at", "updated_at"}
	viewColumns   = []string{"id", "website", "username", "created_at", "updated_at"}
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a user query into a LIKE pattern matched against a
// LOWER()ed column. Wildcards in the query match literally.
func containsPattern(query string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
}

func buildInsertRecordQuery(b sq.StatementBuilderType, record models.Record, envelope []byte) (string, []any, error) {
	return b.Insert(vaultRecordsTable).
		Columns(recordColumns...).
		Values(record.ID, record.OwnerID, record.Website, record.Username, envelope, record.CreatedAt, record.UpdatedAt).
		ToSql()
}

func buildSelectRecordQuery(b sq.StatementBuilderType, ownerID, id string) (string, []any, error) {
	return b.Select(recordColumns...).
		From(vaultRecordsTable).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
}

func buildUpdateRecordQuery(b sq.StatementBuilderType, record models.Record, envelope []byte) (string, []any, error) {
	return b.Update(vaultRecordsTable).
		Set("website", record.Website).
		Set("username", record.Username).
		Set("envelope", envelope).
		Set("updated_at", record.UpdatedAt).
		Where(sq.Eq{"id": record.ID, "owner_id": record.OwnerID}).
		ToSql()
}

func buildDeleteRecordQuery(b sq.StatementBuilderType, ownerID, id string) (string, []any, error) {
	return b.Delete(vaultRecordsTable).
		Where(sq.Eq{"id": id, "owner_id": ownerID}).
		ToSql()
}

// buildListViewsQuery selects only non-secret columns. An empty query lists
// every record of the owner.
func buildListViewsQuery(b sq.StatementBuilderType, ownerID, query string) (string, []any, error) {
	selectBuilder := b.Select(viewColumns...).
		From(vaultRecordsTable).
		Where(sq.Eq{"owner_id": ownerID})

	if query != "" {
		pattern := containsPattern(query)
		selectBuilder = selectBuilder.Where(sq.Or{
			sq.Expr(`LOWER(website) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`LOWER(username) LIKE ? ESCAPE '\'`, pattern),
		})
	}

	return selectBuilder.OrderBy("created_at", "id").ToSql()
}
