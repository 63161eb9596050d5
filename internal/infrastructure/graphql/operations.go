package graphql

// Fragmentos compartidos por las consultas.
const (
	productFields = `
fragment ProductFields on Product {
  sku
  category
  imageUrl
  productStatus
  quantityInStock
  localizations { lang country productName description price currency }
}`

	categoryFields = `
fragment CategoryFields on Category {
  category
  translations { lang text }
}`
)

// Operaciones del catálogo consumidas por el panel.
var (
	opListProducts = Operation{Name: "ListProducts", Document: `
query ListProducts($limit: Int, $nextToken: String) {
  listProducts(limit: $limit, nextToken: $nextToken) { items { ...ProductFields } nextToken }
}` + productFields}

	opProductsByCategory = Operation{Name: "ProductsByCategory", Document: `
query ProductsByCategory($category: String!, $limit: Int, $nextToken: String) {
  productsByCategory(category: $category, limit: $limit, nextToken: $nextToken) { items { ...ProductFields } nextToken }
}` + productFields}

	opBatchGetProducts = Operation{Name: "BatchGetProducts", Document: `
query BatchGetProducts($skus: [String!]!) {
  batchGetProducts(skus: $skus) { ...ProductFields }
}` + productFields}

	opSearchProducts = Operation{Name: "SearchProducts", Document: `
query SearchProducts($text: String!, $limit: Int, $nextToken: String) {
  searchProducts(text: $text, limit: $limit, nextToken: $nextToken) { items { ...ProductFields } nextToken }
}` + productFields}

	opCreateProduct = Operation{Name: "CreateProduct", Document: `
mutation CreateProduct($input: CreateProductInput!) {
  createProduct(input: $input) { sku }
}`}

	opUpdateProduct = Operation{Name: "UpdateProduct", Document: `
mutation UpdateProduct($input: UpdateProductInput!) {
  updateProduct(input: $input) { sku }
}`}

	opDeleteProduct = Operation{Name: "DeleteProduct", Document: `
mutation DeleteProduct($sku: String!) {
  deleteProduct(sku: $sku) { sku }
}`}

	opAddLocalizations = Operation{Name: "AddLocalizations", Document: `
mutation AddLocalizations($sku: String!, $localizations: [LocalizationInput!]!) {
  addLocalizations(sku: $sku, localizations: $localizations) { sku }
}`}

	opUpdateLocalizations = Operation{Name: "UpdateLocalizations", Document: `
mutation UpdateLocalizations($sku: String!, $localizations: [LocalizationInput!]!) {
  updateLocalizations(sku: $sku, localizations: $localizations) { sku }
}`}

	opRemoveLocalization = Operation{Name: "RemoveLocalization", Document: `
mutation RemoveLocalization($sku: String!, $lang: String!, $country: String!) {
  removeLocalization(sku: $sku, lang: $lang, country: $country) { sku }
}`}

	opListCategories = Operation{Name: "ListCategories", Document: `
query ListCategories($limit: Int, $nextToken: String) {
  listCategories(limit: $limit, nextToken: $nextToken) { items { ...CategoryFields } nextToken }
}` + categoryFields}

	opSearchCategories = Operation{Name: "SearchCategories", Document: `
query SearchCategories($text: String!) {
  searchCategories(text: $text) { ...CategoryFields }
}` + categoryFields}

	opGetCategory = Operation{Name: "GetCategory", Document: `
query GetCategory($category: String!) {
  getCategory(category: $category) { ...CategoryFields }
}` + categoryFields}

	opCreateCategory = Operation{Name: "CreateCategory", Document: `
mutation CreateCategory($category: String!) {
  createCategory(category: $category) { category }
}`}

	opDeleteCategory = Operation{Name: "DeleteCategory", Document: `
mutation DeleteCategory($category: String!) {
  deleteCategory(category: $category) { category }
}`}

	opUpsertTranslation = Operation{Name: "UpsertCategoryTranslation", Document: `
mutation UpsertCategoryTranslation($category: String!, $lang: String!, $text: String!) {
  upsertCategoryTranslation(category: $category, lang: $lang, text: $text) { category }
}`}

	opRemoveTranslation = Operation{Name: "RemoveCategoryTranslation", Document: `
mutation RemoveCategoryTranslation($category: String!, $lang: String!) {
  removeCategoryTranslation(category: $category, lang: $lang) { category }
}`}

	opListOrderEvents = Operation{Name: "ListOrderEvents", Document: `
query ListOrderEvents($orderId: String, $limit: Int, $nextToken: String) {
  listOrderEvents(orderId: $orderId, limit: $limit, nextToken: $nextToken) {
    items { eventId orderId eventType status amount currency payload createdAt }
    nextToken
  }
}`}
)
