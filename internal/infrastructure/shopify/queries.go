package shopify

// productsQuery pages through the full catalog. The page size is capped at
// 250 by the Admin API.
const productsQuery = `
query FetchProducts($first: Int!, $after: String) {
  products(first: $first, after: $after) {
    edges {
      node {
        id
        title
        description
        descriptionHtml
        handle
        status
        vendor
        productType
        tags
        createdAt
        updatedAt
        publishedAt
        onlineStoreUrl
        featuredImage {
          id
          url
          altText
          width
          height
        }
        images(first: 250) {
          edges {
            node {
              id
              url
              altText
              width
              height
            }
          }
        }
        variants(first: 100) {
          edges {
            node {
              id
              title
              price
              compareAtPrice
              sku
              barcode
              inventoryQuantity
              image {
                id
                url
                altText
              }
            }
          }
        }
      }
    }
    pageInfo {
      hasNextPage
      endCursor
    }
  }
}`
