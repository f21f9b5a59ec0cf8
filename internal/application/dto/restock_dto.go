package dto

import (
	"encoding/json"
	"strconv"
)

// DaysLeft serializa como número (días estimados, 1 decimal) o como el texto
// "Stock not decreasing" cuando el producto no registra ventas en la ventana.
type DaysLeft struct {
	Known bool
	Days  float64
}

// MarshalJSON implementa la dualidad número/texto del campo.
func (d DaysLeft) MarshalJSON() ([]byte, error) {
	if !d.Known {
		return json.Marshal("Stock not decreasing")
	}
	return []byte(strconv.FormatFloat(d.Days, 'f', -1, 64)), nil
}

// RestockRecommendationItem producto que conviene reabastecer.
type RestockRecommendationItem struct {
	ProductName   string   `json:"product_name"`
	CategoryName  string   `json:"category_name"`
	ImageURL      string   `json:"image_url"`
	Unit          string   `json:"unit"`
	CurrentStock  int64    `json:"current_stock"`
	EstimatedDays DaysLeft `json:"estimated_days_left"`
	RestockQty    int64    `json:"restock_quantity"`
	IsNeedRestock bool     `json:"is_need_restock"`
}
