package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Every event table starts with the same three columns: an auto-increment
// id, the global sequence number and the UTC wall-clock timestamp.
func eventColumns(extra ...*schema.Column) []*schema.Column {
	return append([]*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}, extra...)
}

func eventTable(name string, extra ...*schema.Column) *schema.Table {
	cols := eventColumns(extra...)
	t := &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{Name: name + "_timestamp", Columns: []*schema.Column{cols[2]}},
		},
	}
	// run_id is always the first extra column.
	if len(extra) > 0 && extra[0].Name == "run_id" {
		t.Indexes = append(t.Indexes, &schema.Index{
			Name:    name + "_run_id",
			Columns: []*schema.Column{cols[3]},
		})
	}
	return t
}

var (
	// RunEventsTable records the start and end of each run.
	RunEventsTable = eventTable("run_events",
		&schema.Column{Name: "run_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeEnum, Enums: []string{ActionStart, ActionEnd}},
		&schema.Column{Name: "total_questions", Type: field.TypeInt},
		&schema.Column{Name: "max_depth", Type: field.TypeInt},
		&schema.Column{Name: "seed", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "completed", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "duration_secs", Type: field.TypeFloat64, Default: 0},
		&schema.Column{Name: "export_path", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "export_error", Type: field.TypeString, Default: ""},
	)

	// AttemptEventsTable records every submitted path.
	AttemptEventsTable = eventTable("attempt_events",
		&schema.Column{Name: "run_id", Type: field.TypeString},
		&schema.Column{Name: "question", Type: field.TypeInt},
		&schema.Column{Name: "mode", Type: field.TypeString},
		&schema.Column{Name: "target_path", Type: field.TypeString},
		&schema.Column{Name: "target_value", Type: field.TypeString},
		&schema.Column{Name: "submitted_path", Type: field.TypeString},
		&schema.Column{Name: "correct", Type: field.TypeBool},
		&schema.Column{Name: "elapsed_ms", Type: field.TypeInt64},
	)

	// ResultEventsTable records each completed question, one export row each.
	ResultEventsTable = eventTable("result_events",
		&schema.Column{Name: "run_id", Type: field.TypeString},
		&schema.Column{Name: "question", Type: field.TypeInt},
		&schema.Column{Name: "correct_path", Type: field.TypeString},
		&schema.Column{Name: "user_path", Type: field.TypeString},
		&schema.Column{Name: "attempts", Type: field.TypeInt},
		&schema.Column{Name: "elapsed_ms", Type: field.TypeInt64},
		&schema.Column{Name: "mode", Type: field.TypeString},
	)

	// Tables is every table the store manages.
	Tables = []*schema.Table{RunEventsTable, AttemptEventsTable, ResultEventsTable}
)
