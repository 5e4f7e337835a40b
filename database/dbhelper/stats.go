package dbhelper

import (
	"context"

	"github.com/ray-remotestate/bistro/models"
)

// CategorySales expands every payment into the menus it bought and groups
// them by menu category. Menu ids that no longer resolve are skipped.
func (s *PostgresStore) CategorySales(ctx context.Context) ([]models.CategorySales, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.category, COUNT(*), COALESCE(SUM(m.price), 0)
		FROM payments p
		CROSS JOIN LATERAL unnest(p.menu_ids) AS pm(menu_id)
		JOIN menus m ON m.id::text = pm.menu_id
		GROUP BY m.category
		ORDER BY m.category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sales := make([]models.CategorySales, 0)
	for rows.Next() {
		var cs models.CategorySales
		if err := rows.Scan(&cs.Category, &cs.TotalSales, &cs.TotalRevenue); err != nil {
			return nil, err
		}
		sales = append(sales, cs)
	}
	return sales, rows.Err()
}

func (s *PostgresStore) AdminStats(ctx context.Context) (models.AdminStats, error) {
	var st models.AdminStats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM menus),
			(SELECT COUNT(*) FROM payments),
			(SELECT COALESCE(SUM(amount), 0) FROM payments)`).
		Scan(&st.Customers, &st.Products, &st.Orders, &st.Total)
	return st, err
}
