package usecase

import (
	"sort"

	"github.com/casadopastor/catalog-service/internal/catalog"
	"github.com/casadopastor/catalog-service/internal/catalog/dto"
	"github.com/casadopastor/catalog-service/internal/locale"
	"github.com/casadopastor/catalog-service/internal/model"
	"github.com/casadopastor/catalog-service/internal/promotion"
	"github.com/shopspring/decimal"
)

// assemble folds the resolved product, its translation overlay, the batched
// variation details and the active promotions into the storefront aggregate.
func (uc *catalogUseCase) assemble(
	product *model.Product,
	tr *model.ProductTranslation,
	variations []model.Variation,
	details *catalog.VariationDetails,
	images []model.Image,
	category *model.Category,
	categoryTr *model.CategoryTranslation,
	promos map[string]model.Promotion,
) *dto.ProductDetail {
	detail := &dto.ProductDetail{
		ID:       product.ID,
		Slug:     product.Slug,
		Name:     product.Name,
		FileType: product.FileType,
		Tags:     []string{},
	}
	if tr != nil {
		detail.Name = locale.PickText(product.Name, tr.Name)
		detail.Slug = locale.PickText(product.Slug, tr.Slug)
		detail.SeoTitle = tr.SeoTitle
		detail.SeoDescription = tr.SeoDescription
	}
	detail.Description = locale.PickText(product.ShortDescription, translatedShort(tr))
	detail.LongDescription = locale.PickRichText(product.Description, translatedLong(tr))

	if category != nil {
		name := category.Name
		slug := category.Slug
		if categoryTr != nil {
			name = locale.PickText(category.Name, categoryTr.Name)
			slug = locale.PickText(category.Slug, categoryTr.Slug)
		}
		detail.Category = &dto.CategoryRef{ID: category.ID, Slug: slug, Name: name}
	}

	detail.Images = make([]dto.ImageView, 0, len(images))
	for _, img := range images {
		detail.Images = append(detail.Images, dto.ImageView{
			ID:        img.ID,
			URL:       img.URL,
			SortOrder: img.SortOrder,
			IsMain:    img.IsMain,
		})
	}
	if len(detail.Images) == 0 {
		// Synthesize one fallback image so the storefront always has
		// something to render.
		detail.Images = append(detail.Images, dto.ImageView{URL: uc.placeholderImage, IsMain: true})
	}

	attrRowsByVariation := make(map[string][]model.VariationAttributeValue, len(variations))
	for _, row := range details.AttributeRows {
		attrRowsByVariation[row.VariationID] = append(attrRowsByVariation[row.VariationID], row)
	}

	tagSet := map[string]struct{}{}
	detail.Variations = make([]dto.VariationView, 0, len(variations))
	for _, v := range variations {
		view := uc.assembleVariation(v, details, attrRowsByVariation[v.ID], promos)
		for _, av := range view.AttributeValues {
			if av.Value != "" {
				tagSet[av.Value] = struct{}{}
			}
		}
		detail.Variations = append(detail.Variations, view)
	}

	for tag := range tagSet {
		detail.Tags = append(detail.Tags, tag)
	}
	sort.Strings(detail.Tags)

	// Product-level prices follow the cheapest variation; no variations
	// means zero for both.
	detail.BasePrice = decimal.Zero
	detail.OriginalPrice = decimal.Zero
	for i, view := range detail.Variations {
		if i == 0 || view.Price.LessThan(detail.BasePrice) {
			detail.BasePrice = view.Price
		}
		if i == 0 || view.OriginalPrice.LessThan(detail.OriginalPrice) {
			detail.OriginalPrice = view.OriginalPrice
		}
		if view.HasPromotion {
			detail.HasPromotion = true
		}
	}

	return detail
}

func (uc *catalogUseCase) assembleVariation(
	v model.Variation,
	details *catalog.VariationDetails,
	attrRows []model.VariationAttributeValue,
	promos map[string]model.Promotion,
) dto.VariationView {
	name := v.Name
	if tr, ok := details.Translations[v.ID]; ok {
		name = locale.PickText(v.Name, tr.Name)
	}

	var promo *model.Promotion
	if p, ok := promos[v.ID]; ok {
		promo = &p
	}
	priced := promotion.Price(v.Price, promo)

	view := dto.VariationView{
		ID:              v.ID,
		Name:            name,
		Price:           priced.FinalPrice,
		OriginalPrice:   priced.OriginalPrice,
		HasPromotion:    priced.HasPromotion,
		Discount:        priced.Discount,
		AttributeValues: make([]dto.AttributeValueView, 0, len(attrRows)),
		Files:           []dto.FileView{},
		Images:          []dto.ImageView{},
	}
	if priced.Promotion != nil {
		view.Promotion = &dto.PromotionView{
			ID:            priced.Promotion.ID,
			Name:          priced.Promotion.Name,
			DiscountType:  priced.Promotion.DiscountType,
			DiscountValue: priced.Promotion.DiscountValue,
			EndsAt:        priced.Promotion.EndsAt,
		}
	}

	for _, row := range attrRows {
		// A join row pointing at a missing dictionary entry degrades to an
		// empty field; one bad row must not fail the response.
		av := dto.AttributeValueView{}
		if attr, ok := details.Attributes[row.AttributeID]; ok {
			av.Attribute = attr.Name
		}
		if val, ok := details.Values[row.AttributeValueID]; ok {
			av.Value = val.Value
		}
		view.AttributeValues = append(view.AttributeValues, av)
	}

	for _, f := range details.Files[v.ID] {
		view.Files = append(view.Files, dto.FileView{
			ID:        f.ID,
			Name:      f.OriginalName,
			MimeType:  f.MimeType,
			SizeBytes: f.SizeBytes,
		})
	}
	for _, img := range details.Images[v.ID] {
		view.Images = append(view.Images, dto.ImageView{
			ID:        img.ID,
			URL:       img.URL,
			SortOrder: img.SortOrder,
			IsMain:    img.IsMain,
		})
	}

	return view
}

func translatedShort(tr *model.ProductTranslation) string {
	if tr == nil {
		return ""
	}
	return tr.ShortDescription
}

func translatedLong(tr *model.ProductTranslation) string {
	if tr == nil {
		return ""
	}
	return tr.Description
}
