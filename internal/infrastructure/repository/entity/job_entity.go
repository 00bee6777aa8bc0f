package entity

import (
	"time"

	"shopify-summary-sync/internal/domain"
)

// MongoJobDoc represents an installation job in MongoDB
type MongoJobDoc struct {
	JobID              string               `bson:"job_id"`
	ShopURL            string               `bson:"shop_url"`
	Status             string               `bson:"status"`
	TotalProducts      int                  `bson:"total_products"`
	ProductsProcessed  int                  `bson:"products_processed"`
	SummariesGenerated int                  `bson:"summaries_generated"`
	ProgressPercentage int                  `bson:"progress_percentage"`
	CreatedAt          time.Time            `bson:"created_at"`
	StartedAt          time.Time            `bson:"started_at,omitempty"`
	CompletedAt        time.Time            `bson:"completed_at,omitempty"`
	ErrorMessage       string               `bson:"error_message,omitempty"`
	Errors             []MongoProductErrDoc `bson:"errors,omitempty"`
	UpdatedAt          time.Time            `bson:"updated_at"`
}

type MongoProductErrDoc struct {
	ProductID    string `bson:"product_id"`
	ProductTitle string `bson:"product_title"`
	Error        string `bson:"error"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoJobDoc) ToDomain() *domain.InstallationJob {
	job := &domain.InstallationJob{
		JobID:              d.JobID,
		ShopURL:            d.ShopURL,
		Status:             domain.JobStatus(d.Status),
		TotalProducts:      d.TotalProducts,
		ProductsProcessed:  d.ProductsProcessed,
		SummariesGenerated: d.SummariesGenerated,
		ProgressPercentage: d.ProgressPercentage,
		CreatedAt:          d.CreatedAt,
		StartedAt:          d.StartedAt,
		CompletedAt:        d.CompletedAt,
		ErrorMessage:       d.ErrorMessage,
	}
	for _, e := range d.Errors {
		job.Errors = append(job.Errors, domain.ProductError{
			ProductID:    e.ProductID,
			ProductTitle: e.ProductTitle,
			Error:        e.Error,
		})
	}
	return job
}

// MongoProductErrDocsFromDomain converts per-product errors for storage
func MongoProductErrDocsFromDomain(errs []domain.ProductError) []MongoProductErrDoc {
	docs := make([]MongoProductErrDoc, 0, len(errs))
	for _, e := range errs {
		docs = append(docs, MongoProductErrDoc{
			ProductID:    e.ProductID,
			ProductTitle: e.ProductTitle,
			Error:        e.Error,
		})
	}
	return docs
}
