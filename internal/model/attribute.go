package model

// Attribute is a global dictionary entry ("Color"), not scoped to one product.
type Attribute struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// AttributeValue is one possible setting of an Attribute ("Blue").
type AttributeValue struct {
	ID          string `db:"id" json:"id"`
	AttributeID string `db:"attribute_id" json:"attribute_id"`
	Value       string `db:"value" json:"value"`
}

// VariationAttributeValue records which attribute values a variation has.
type VariationAttributeValue struct {
	VariationID      string `db:"variation_id" json:"variation_id"`
	AttributeID      string `db:"attribute_id" json:"attribute_id"`
	AttributeValueID string `db:"attribute_value_id" json:"attribute_value_id"`
}
