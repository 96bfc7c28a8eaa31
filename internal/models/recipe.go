package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LineSeparator joins ingredient and instruction lines into the stored blobs.
const LineSeparator = "\n"

// Recipe is a saved recipe in the gallery. Ingredient and instruction lines
// are stored joined as text blobs, one display line per entry.
type Recipe struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Ingredients  string         `gorm:"type:text;not null" json:"-"`
	Instructions string         `gorm:"type:text;not null" json:"-"`
	Difficulty   int            `gorm:"not null" json:"difficulty"`
	WinePairing  string         `gorm:"type:text" json:"wine_pairing"`
	UserID       uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"user_id"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// IngredientLines splits the stored ingredients blob back into display lines.
func (r *Recipe) IngredientLines() []string {
	return splitLines(r.Ingredients)
}

// InstructionLines splits the stored instructions blob back into display lines.
func (r *Recipe) InstructionLines() []string {
	return splitLines(r.Instructions)
}

func splitLines(blob string) []string {
	if blob == "" {
		return nil
	}
	return strings.Split(blob, LineSeparator)
}

// JoinLines builds a stored blob from display lines.
func JoinLines(lines []string) string {
	return strings.Join(lines, LineSeparator)
}
