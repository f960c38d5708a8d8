// Package catalogueload builds a catalogue.MemStore from the on-disk
// reference data: the SQLite catalogue database produced by the mtx import
// pipeline, the forbidden-process CSV, and the rule-message table (spec.md
// §4.1, §6).
package catalogueload

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	foodex2errors "github.com/openfoodex/foodex2validator/errors"
	"github.com/openfoodex/foodex2validator/internal/catalogue"
	"github.com/openfoodex/foodex2validator/internal/model"
	"github.com/openfoodex/foodex2validator/internal/rules"
)

// LoadSQLite opens the catalogue database at dsn read-only and populates a
// new MemStore from its terms and term_hierarchies tables. It always seeds
// the store with the specification's default rule definitions first, so a
// database lacking a rule_messages table still yields a fully usable store.
func LoadSQLite(dsn string) (*catalogue.MemStore, error) {
	db, err := sql.Open("sqlite3", dsn+"?mode=ro")
	if err != nil {
		return nil, foodex2errors.Newf(foodex2errors.ErrCatalogueUnreadable, "opening catalogue database", "dsn=%s: %v", dsn, err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return nil, foodex2errors.Newf(foodex2errors.ErrCatalogueUnreadable, "catalogue database unreachable", "dsn=%s: %v", dsn, err)
	}

	store := catalogue.New()
	for _, def := range rules.DefaultDefinitions() {
		store.AddRule(def)
	}

	if err := loadTerms(db, store); err != nil {
		return nil, err
	}
	if err := loadHierarchies(db, store); err != nil {
		return nil, err
	}
	if err := store.ValidateAcyclic(); err != nil {
		return nil, err
	}
	if err := loadRuleMessages(db, store); err != nil {
		return nil, err
	}

	store.BuildSearchIndex()
	return store, nil
}

func loadTerms(db *sql.DB, store *catalogue.MemStore) error {
	rows, err := db.Query(`
		SELECT term_code, extended_name, short_name, scope_note, term_type,
		       detail_level, status, deprecated, implicit_facets,
		       scientific_names, common_names
		FROM terms`)
	if err != nil {
		return foodex2errors.Newf(foodex2errors.ErrCatalogueUnreadable, "querying terms table", "%v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			code, extendedName, shortName, scopeNote, termTypeCode string
			detailLevel, status                                    string
			deprecated                                              int
			implicitFacets, scientificNames, commonNames           sql.NullString
		)
		if err := rows.Scan(&code, &extendedName, &shortName, &scopeNote, &termTypeCode,
			&detailLevel, &status, &deprecated, &implicitFacets, &scientificNames, &commonNames); err != nil {
			return foodex2errors.Newf(foodex2errors.ErrCatalogueUnreadable, "scanning terms row", "%v", err)
		}
		store.AddTerm(&model.Term{
			Code:            code,
			ExtendedName:    extendedName,
			ShortName:       shortName,
			ScopeNote:       scopeNote,
			TermType:        model.ParseTermType(termTypeCode),
			DetailLevel:     detailLevel,
			Status:          model.ParseTermStatus(status),
			Deprecated:      deprecated != 0,
			ImplicitFacets:  implicitFacets.String,
			ScientificNames: scientificNames.String,
			CommonNames:     commonNames.String,
		})
	}
	return rows.Err()
}

func loadHierarchies(db *sql.DB, store *catalogue.MemStore) error {
	rows, err := db.Query(`SELECT term_code, hierarchy_code, parent_code FROM term_hierarchies`)
	if err != nil {
		return foodex2errors.Newf(foodex2errors.ErrCatalogueUnreadable, "querying term_hierarchies table", "%v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var code, hierarchyCode string
		var parentCode sql.NullString
		if err := rows.Scan(&code, &hierarchyCode, &parentCode); err != nil {
			return foodex2errors.Newf(foodex2errors.ErrCatalogueUnreadable, "scanning term_hierarchies row", "%v", err)
		}
		store.AddHierarchyLink(hierarchyCode, code, parentCode.String)
	}
	return rows.Err()
}

// loadRuleMessages overrides the seeded default rule definitions with any
// catalogue-supplied rule_messages rows. A database with no such table is
// not an error: the specification's embedded defaults already cover it.
func loadRuleMessages(db *sql.DB, store *catalogue.MemStore) error {
	rows, err := db.Query(`SELECT rule_id, message, severity FROM rule_messages`)
	if err != nil {
		return nil
	}
	defer rows.Close()

	for rows.Next() {
		var id, message, severity string
		if err := rows.Scan(&id, &message, &severity); err != nil {
			return foodex2errors.Newf(foodex2errors.ErrCatalogueUnreadable, "scanning rule_messages row", "%v", err)
		}
		store.AddRule(model.RuleDefinition{
			ID:       model.RuleID(id),
			Message:  message,
			Severity: model.ParseSeverity(severity),
		})
	}
	return rows.Err()
}
