package db

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column names of the menu configuration.
const (
	MenuConfigItemsTableName = "menu_config_items"
	ColumnID                 = "id"
	ColumnEntryID            = "entry_id"
	ColumnParentID           = "parent_id"
	ColumnOrder              = "order"
	ColumnName               = "name"
)

var (
	// MenuConfigItemsColumns holds the columns for the "menu_config_items" table.
	MenuConfigItemsColumns = []*schema.Column{
		{Name: ColumnID, Type: field.TypeInt, Increment: true},
		{Name: ColumnEntryID, Type: field.TypeString, Size: 100},
		{Name: ColumnOrder, Type: field.TypeInt},
		{Name: ColumnName, Type: field.TypeString, Size: 200, Default: ""},
		{Name: ColumnParentID, Type: field.TypeInt, Nullable: true},
	}
	// MenuConfigItemsTable holds the schema information for the "menu_config_items" table.
	MenuConfigItemsTable = &schema.Table{
		Name:       MenuConfigItemsTableName,
		Columns:    MenuConfigItemsColumns,
		PrimaryKey: []*schema.Column{MenuConfigItemsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "menu_config_items_parent",
				Columns:    []*schema.Column{MenuConfigItemsColumns[4]},
				RefColumns: []*schema.Column{MenuConfigItemsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "menuconfigitem_parent_id_order",
				Columns: []*schema.Column{MenuConfigItemsColumns[4], MenuConfigItemsColumns[2]},
			},
		},
	}
	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{MenuConfigItemsTable}
)

func init() {
	MenuConfigItemsTable.ForeignKeys[0].RefTable = MenuConfigItemsTable
}

// Migrate creates or upgrades the schema.
func Migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv, schema.WithForeignKeys(true))
	if err != nil {
		return fmt.Errorf("ent migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	dbLogger.Info("schema up to date")
	return nil
}
