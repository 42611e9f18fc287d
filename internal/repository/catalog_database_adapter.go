package repository

import (
	"context"
	"fmt"

	"restaurant-quiz/internal/domain"
	"restaurant-quiz/internal/repository/models"
	"restaurant-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

type CatalogDatabaseAdapter struct {
	db *sqlx.DB
}

// NewCatalogDatabaseAdapter creates a new instance of CatalogDatabaseAdapter
func NewCatalogDatabaseAdapter(db *sqlx.DB) domain.CatalogRepository {
	return &CatalogDatabaseAdapter{db: db}
}

const (
	selectMenuItemsQuery = `SELECT id, restaurant_id, name, image_url, ingredients
	FROM menu_items
	WHERE restaurant_id = :1
	ORDER BY id`

	selectIngredientsQuery = `SELECT id, restaurant_id, name, image_url, allergies, derived_allergies, sub_ingredients
	FROM ingredients
	WHERE restaurant_id = :1
	ORDER BY id`

	selectAllergiesQuery = `SELECT id, restaurant_id, name, logo_url
	FROM allergies
	WHERE restaurant_id = :1
	ORDER BY id`
)

// GetMenuItems returns the restaurant's menu items ordered by ID.
func (a *CatalogDatabaseAdapter) GetMenuItems(ctx context.Context, restaurantID string) ([]domain.MenuItem, error) {
	var rows []models.MenuItem
	if err := a.db.SelectContext(ctx, &rows, selectMenuItemsQuery, restaurantID); err != nil {
		return nil, fmt.Errorf("failed to get menu items for restaurant %s: %w", restaurantID, err)
	}

	items := make([]domain.MenuItem, len(rows))
	for i, row := range rows {
		items[i] = toDomainMenuItem(row)
	}
	return items, nil
}

// GetIngredients returns the restaurant's ingredients ordered by ID.
func (a *CatalogDatabaseAdapter) GetIngredients(ctx context.Context, restaurantID string) ([]domain.Ingredient, error) {
	var rows []models.Ingredient
	if err := a.db.SelectContext(ctx, &rows, selectIngredientsQuery, restaurantID); err != nil {
		return nil, fmt.Errorf("failed to get ingredients for restaurant %s: %w", restaurantID, err)
	}

	ingredients := make([]domain.Ingredient, len(rows))
	for i, row := range rows {
		ingredients[i] = toDomainIngredient(row)
	}
	return ingredients, nil
}

// GetAllergies returns the restaurant's allergies keyed by ID.
func (a *CatalogDatabaseAdapter) GetAllergies(ctx context.Context, restaurantID string) (map[string]domain.Allergy, error) {
	var rows []models.Allergy
	if err := a.db.SelectContext(ctx, &rows, selectAllergiesQuery, restaurantID); err != nil {
		return nil, fmt.Errorf("failed to get allergies for restaurant %s: %w", restaurantID, err)
	}

	allergies := make(map[string]domain.Allergy, len(rows))
	for _, row := range rows {
		allergies[row.ID] = domain.Allergy{
			ID:      row.ID,
			Name:    row.Name,
			LogoURL: row.LogoURL.String,
		}
	}
	return allergies, nil
}

func toDomainMenuItem(m models.MenuItem) domain.MenuItem {
	return domain.MenuItem{
		ID:          m.ID,
		Name:        m.Name,
		ImageURL:    m.ImageURL.String,
		Ingredients: []string(m.Ingredients),
	}
}

func toDomainIngredient(m models.Ingredient) domain.Ingredient {
	return domain.Ingredient{
		ID:               m.ID,
		Name:             m.Name,
		ImageURL:         m.ImageURL.String,
		Allergies:        []string(m.Allergies),
		DerivedAllergies: []string(m.DerivedAllergies),
		SubIngredients:   []string(m.SubIngredients),
	}
}

const (
	deleteMenuItemsQuery   = `DELETE FROM menu_items WHERE restaurant_id = :1`
	deleteIngredientsQuery = `DELETE FROM ingredients WHERE restaurant_id = :1`
	deleteAllergiesQuery   = `DELETE FROM allergies WHERE restaurant_id = :1`

	insertAllergyQuery = `INSERT INTO allergies (id, restaurant_id, name, logo_url)
	VALUES (:1, :2, :3, :4)`

	insertIngredientQuery = `INSERT INTO ingredients (id, restaurant_id, name, image_url, allergies, derived_allergies, sub_ingredients)
	VALUES (:1, :2, :3, :4, :5, :6, :7)`

	insertMenuItemQuery = `INSERT INTO menu_items (id, restaurant_id, name, image_url, ingredients)
	VALUES (:1, :2, :3, :4, :5)`
)

// NewCatalogWriter returns the write side of the catalog adapter, used by
// the seed command.
func NewCatalogWriter(db *sqlx.DB) domain.CatalogWriter {
	return &CatalogDatabaseAdapter{db: db}
}

// ReplaceCatalog deletes the restaurant's rows and inserts data in a single
// transaction. Allergies are written in ID order.
func (a *CatalogDatabaseAdapter) ReplaceCatalog(ctx context.Context, restaurantID string, data *domain.RestaurantData) (err error) {
	if restaurantID == "" {
		return domain.NewInvalidInputError("restaurant id is required")
	}
	if data == nil {
		return domain.NewInvalidInputError("catalog data is required")
	}

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("failed to commit catalog for restaurant %s: %w", restaurantID, cErr)
		}
	}()

	for _, q := range []string{deleteMenuItemsQuery, deleteIngredientsQuery, deleteAllergiesQuery} {
		if _, err = tx.ExecContext(ctx, q, restaurantID); err != nil {
			return fmt.Errorf("failed to clear catalog for restaurant %s: %w", restaurantID, err)
		}
	}

	for _, allergy := range data.SortedAllergies() {
		row := toAllergyModel(restaurantID, allergy)
		if _, err = tx.ExecContext(ctx, insertAllergyQuery, row.ID, row.RestaurantID, row.Name, row.LogoURL); err != nil {
			return fmt.Errorf("failed to insert allergy %s: %w", allergy.ID, err)
		}
	}

	for _, ing := range data.Ingredients {
		row := toIngredientModel(restaurantID, ing)
		if _, err = tx.ExecContext(ctx, insertIngredientQuery,
			row.ID, row.RestaurantID, row.Name, row.ImageURL,
			row.Allergies, row.DerivedAllergies, row.SubIngredients); err != nil {
			return fmt.Errorf("failed to insert ingredient %s: %w", ing.ID, err)
		}
	}

	for _, item := range data.MenuItems {
		row := toMenuItemModel(restaurantID, item)
		if _, err = tx.ExecContext(ctx, insertMenuItemQuery,
			row.ID, row.RestaurantID, row.Name, row.ImageURL, row.Ingredients); err != nil {
			return fmt.Errorf("failed to insert menu item %s: %w", item.ID, err)
		}
	}
	return nil
}

func toAllergyModel(restaurantID string, a domain.Allergy) models.Allergy {
	return models.Allergy{
		ID:           a.ID,
		RestaurantID: restaurantID,
		Name:         a.Name,
		LogoURL:      util.StringToNullString(a.LogoURL),
	}
}

func toIngredientModel(restaurantID string, ing domain.Ingredient) models.Ingredient {
	return models.Ingredient{
		ID:               ing.ID,
		RestaurantID:     restaurantID,
		Name:             ing.Name,
		ImageURL:         util.StringToNullString(ing.ImageURL),
		Allergies:        models.StringSlice(ing.Allergies),
		DerivedAllergies: models.StringSlice(ing.DerivedAllergies),
		SubIngredients:   models.StringSlice(ing.SubIngredients),
	}
}

func toMenuItemModel(restaurantID string, item domain.MenuItem) models.MenuItem {
	return models.MenuItem{
		ID:           item.ID,
		RestaurantID: restaurantID,
		Name:         item.Name,
		ImageURL:     util.StringToNullString(item.ImageURL),
		Ingredients:  models.StringSlice(item.Ingredients),
	}
}
