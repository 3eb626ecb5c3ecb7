package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// SubmissionRepositoryPG is the Postgres-backed submission repository.
type SubmissionRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewSubmissionRepositoryPG creates a submission repository on top of a pgx pool.
func NewSubmissionRepositoryPG(pool *pgxpool.Pool) *SubmissionRepositoryPG {
	return &SubmissionRepositoryPG{pool: pool}
}

const submissionColumns = `
	id, user_id,
	product_name, product_tagline, product_category, highlighted_benefit, product_description,
	brand_name, brand_tone, color_theme, background_style, lighting_style,
	product_placement, typography_style, composition_guidelines,
	original_image_url, original_image_public_id,
	instagram_post_url, instagram_post_public_id,
	instagram_story_url, instagram_story_public_id,
	facebook_post_url, facebook_post_public_id,
	linkedin_post_url, linkedin_post_public_id,
	website_banner_url, website_banner_public_id,
	created_at`

// Create persists the submission and bumps the owner's generated-images
// counter in one transaction. The counter update is conditional on the quota,
// so a user racing two requests can never land more rows than the quota
// allows: the losing transaction sees zero updated rows and rolls back with
// domain.ErrQuotaExceeded.
func (r *SubmissionRepositoryPG) Create(ctx context.Context, sub *domain.Submission, quota int) error {
	if sub == nil {
		return fmt.Errorf("submission is required")
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE users
		SET generated_images = generated_images + 1, updated_at = now()
		WHERE id = $1 AND generated_images < $2
	`, sub.UserID, quota)
	if err != nil {
		return fmt.Errorf("increment counter: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrQuotaExceeded
	}

	igPost := sub.CreativeFor(domain.AssetTypeInstagramPost)
	igStory := sub.CreativeFor(domain.AssetTypeInstagramStory)
	fbPost := sub.CreativeFor(domain.AssetTypeFacebookPost)
	liPost := sub.CreativeFor(domain.AssetTypeLinkedInPost)
	banner := sub.CreativeFor(domain.AssetTypeWebsiteBanner)

	_, err = tx.Exec(ctx, `
		INSERT INTO submissions (
			id, user_id,
			product_name, product_tagline, product_category, highlighted_benefit, product_description,
			brand_name, brand_tone, color_theme, background_style, lighting_style,
			product_placement, typography_style, composition_guidelines,
			original_image_url, original_image_public_id,
			instagram_post_url, instagram_post_public_id,
			instagram_story_url, instagram_story_public_id,
			facebook_post_url, facebook_post_public_id,
			linkedin_post_url, linkedin_post_public_id,
			website_banner_url, website_banner_public_id,
			created_at
		) VALUES (
			$1, $2,
			$3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15,
			$16, $17,
			$18, $19,
			$20, $21,
			$22, $23,
			$24, $25,
			$26, $27,
			$28
		)
	`,
		sub.ID, sub.UserID,
		sub.ProductName, sub.ProductTagline, sub.ProductCategory, sub.HighlightedBenefit, sub.ProductDescription,
		sub.BrandName, sub.BrandTone, sub.ColorTheme, sub.BackgroundStyle, sub.LightingStyle,
		sub.ProductPlacement, sub.TypographyStyle, sub.CompositionGuidelines,
		sub.OriginalImage.URL, sub.OriginalImage.PublicID,
		igPost.URL, igPost.PublicID,
		igStory.URL, igStory.PublicID,
		fbPost.URL, fbPost.PublicID,
		liPost.URL, liPost.PublicID,
		banner.URL, banner.PublicID,
		sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert submission: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// GetByID loads one submission by primary key. Malformed ids short-circuit to
// domain.ErrNotFound instead of tripping a uuid cast error in postgres.
func (r *SubmissionRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)
	sub, err := scanSubmission(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return sub, nil
}

// ListByUser returns the user's submissions, newest first.
func (r *SubmissionRepositoryPG) ListByUser(ctx context.Context, userID string) ([]domain.Submission, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	var out []domain.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate submissions: %w", err)
	}
	return out, nil
}

// Delete removes one submission by primary key.
func (r *SubmissionRepositoryPG) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete submission: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanSubmission(row pgx.Row) (*domain.Submission, error) {
	var (
		sub     domain.Submission
		igPost  domain.ImageRef
		igStory domain.ImageRef
		fbPost  domain.ImageRef
		liPost  domain.ImageRef
		banner  domain.ImageRef
	)
	err := row.Scan(
		&sub.ID, &sub.UserID,
		&sub.ProductName, &sub.ProductTagline, &sub.ProductCategory, &sub.HighlightedBenefit, &sub.ProductDescription,
		&sub.BrandName, &sub.BrandTone, &sub.ColorTheme, &sub.BackgroundStyle, &sub.LightingStyle,
		&sub.ProductPlacement, &sub.TypographyStyle, &sub.CompositionGuidelines,
		&sub.OriginalImage.URL, &sub.OriginalImage.PublicID,
		&igPost.URL, &igPost.PublicID,
		&igStory.URL, &igStory.PublicID,
		&fbPost.URL, &fbPost.PublicID,
		&liPost.URL, &liPost.PublicID,
		&banner.URL, &banner.PublicID,
		&sub.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	sub.SetCreative(domain.AssetTypeInstagramPost, igPost)
	sub.SetCreative(domain.AssetTypeInstagramStory, igStory)
	sub.SetCreative(domain.AssetTypeFacebookPost, fbPost)
	sub.SetCreative(domain.AssetTypeLinkedInPost, liPost)
	sub.SetCreative(domain.AssetTypeWebsiteBanner, banner)
	return &sub, nil
}

var _ domain.SubmissionRepository = (*SubmissionRepositoryPG)(nil)
