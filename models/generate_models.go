package models

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var (
	naming      = schema.NamingStrategy{}
	schemaCache sync.Map
)

// AllModels lists every persisted model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&TeamMember{},
		&Project{},
		&Category{},
		&BannerSlide{},
		&Inquiry{},
		&InquiryActivity{},
		&SiteSettings{},
	}
}

// GenerateModels migrates every model and writes typed query helpers to
// ./generated. Run it with GENERATE_MODELS=true.
func GenerateModels(db *gorm.DB) error {
	db = db.Session(&gorm.Session{
		Logger:                 db.Logger.LogMode(logger.Info),
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	log.Info().Int("models", len(AllModels())).Msg("migrating models before generation")
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("migrating models: %w", err)
	}

	reports, err := ColumnMismatchReport(db)
	if err != nil {
		return err
	}
	LogColumnMismatchReport(reports)

	g := gen.NewGenerator(gen.Config{
		OutPath:           "./generated",
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(AllModels()...)
	g.Execute()

	log.Info().Msg("model generation complete")
	return nil
}

// TableReport lists the columns of one table that no model field maps to.
// Such columns are usually leftovers from hand-run schema edits.
type TableReport struct {
	Table    string
	Missing  bool
	Unmapped []string
}

// ColumnMismatchReport compares live tables with the models. Tables that do
// not exist yet are reported with Missing set.
func ColumnMismatchReport(db *gorm.DB) ([]TableReport, error) {
	migrator := db.Migrator()

	reports := make([]TableReport, 0, len(AllModels()))
	for _, model := range AllModels() {
		s, err := schema.Parse(model, &schemaCache, naming)
		if err != nil {
			return nil, fmt.Errorf("parsing model %T: %w", model, err)
		}

		report := TableReport{Table: s.Table}
		if !migrator.HasTable(s.Table) {
			report.Missing = true
			reports = append(reports, report)
			continue
		}

		columnTypes, err := migrator.ColumnTypes(s.Table)
		if err != nil {
			return nil, fmt.Errorf("reading columns of %s: %w", s.Table, err)
		}
		dbColumns := make([]string, 0, len(columnTypes))
		for _, ct := range columnTypes {
			dbColumns = append(dbColumns, ct.Name())
		}

		report.Unmapped = findColumnMismatches(dbColumns, modelColumns(s))
		reports = append(reports, report)
	}

	sort.Slice(reports, func(i, j int) bool { return reports[i].Table < reports[j].Table })
	return reports, nil
}

// LogColumnMismatchReport writes one line per table and a total.
func LogColumnMismatchReport(reports []TableReport) {
	total := 0
	for _, r := range reports {
		switch {
		case r.Missing:
			log.Warn().Str("table", r.Table).Msg("table does not exist yet")
		case len(r.Unmapped) > 0:
			log.Warn().Str("table", r.Table).Strs("columns", r.Unmapped).Msg("columns not mapped by the model")
			total += len(r.Unmapped)
		default:
			log.Info().Str("table", r.Table).Msg("all columns mapped")
		}
	}
	log.Info().Int("unmapped", total).Msg("column mismatch report done")
}

// GenerateColumnMismatchReportStandalone reports without migrating. Run it
// with GENERATE_COLUMN_REPORT=true.
func GenerateColumnMismatchReportStandalone(db *gorm.DB) error {
	reports, err := ColumnMismatchReport(db)
	if err != nil {
		return err
	}
	LogColumnMismatchReport(reports)
	return nil
}

func modelColumns(s *schema.Schema) []string {
	columns := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		if f.DBName != "" {
			columns = append(columns, f.DBName)
		}
	}
	return columns
}

// getModelFields returns the column names gorm maps a model to.
func getModelFields(model interface{}) []string {
	s, err := schema.Parse(model, &schemaCache, naming)
	if err != nil {
		return nil
	}
	return modelColumns(s)
}

func findColumnMismatches(dbColumns, modelFields []string) []string {
	known := make(map[string]struct{}, len(modelFields))
	for _, field := range modelFields {
		known[field] = struct{}{}
	}

	var unmapped []string
	for _, col := range dbColumns {
		if _, ok := known[col]; !ok {
			unmapped = append(unmapped, col)
		}
	}
	return unmapped
}
