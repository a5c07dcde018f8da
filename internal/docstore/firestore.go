package docstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/database-playground/account-eraser/internal/metrics"
	"github.com/hashicorp/go-multierror"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore deletes subtrees from Cloud Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a FirestoreStore.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// RecursiveDelete walks the subtree depth-first and deletes it through a
// BulkWriter. All descendants are committed before the root document is
// deleted; if any descendant fails, the root is kept.
func (s *FirestoreStore) RecursiveDelete(ctx context.Context, path string) error {
	ctx, span := tracer.Start(ctx, "FirestoreStore.RecursiveDelete",
		trace.WithAttributes(
			attribute.String("docstore.path", path),
		))
	defer span.End()

	if err := ValidateDocumentPath(path); err != nil {
		span.SetStatus(otelcodes.Error, "Invalid path")
		return status.Errorf(codes.InvalidArgument, "invalid document path %q: %v", path, err)
	}

	root := s.client.Doc(path)
	if root == nil {
		span.SetStatus(otelcodes.Error, "Invalid path")
		return status.Errorf(codes.InvalidArgument, "invalid document path %q", path)
	}

	deleted, err := deleteSubtree(ctx, firestoreDocument{ref: root}, &bulkDeleteQueue{bw: s.client.BulkWriter(ctx)})
	recordDeleted(span, deleted)
	if err != nil {
		span.SetStatus(otelcodes.Error, "Failed to delete subtree")
		span.RecordError(err)
		return err
	}

	span.SetStatus(otelcodes.Ok, "Subtree deleted")
	return nil
}

// document is a node of the document tree.
type document interface {
	Path() string
	// Children lists the documents directly below this one, across all
	// of its subcollections.
	Children(ctx context.Context) ([]document, error)
}

// deleteQueue batches document deletes.
type deleteQueue interface {
	Delete(doc document) (deleteJob, error)
	// Flush blocks until every queued delete has been committed or failed.
	Flush()
	End()
}

type deleteJob interface {
	Err() error
}

// deleteSubtree deletes every descendant of root, children before their
// parents, and then root itself. root is only queued after all descendants
// succeeded. It returns the number of documents deleted.
func deleteSubtree(ctx context.Context, root document, queue deleteQueue) (int, error) {
	defer queue.End()

	var jobs []deleteJob
	err := walkDescendants(ctx, root, func(doc document) error {
		job, err := queue.Delete(doc)
		if err != nil {
			return fmt.Errorf("enqueue delete %s: %w", doc.Path(), err)
		}
		jobs = append(jobs, job)
		return nil
	})
	if err != nil {
		queue.Flush()
		return len(jobs) - countFailed(collectJobErrors(jobs)), err
	}

	queue.Flush()
	if err := collectJobErrors(jobs); err != nil {
		return len(jobs) - countFailed(err), fmt.Errorf("delete descendants of %s: %w", root.Path(), err)
	}

	rootJob, err := queue.Delete(root)
	if err != nil {
		return len(jobs), fmt.Errorf("enqueue delete %s: %w", root.Path(), err)
	}

	queue.Flush()
	if err := rootJob.Err(); err != nil {
		return len(jobs), fmt.Errorf("delete %s: %w", root.Path(), err)
	}

	return len(jobs) + 1, nil
}

// walkDescendants calls visit for every document below doc, children after
// their own descendants.
func walkDescendants(ctx context.Context, doc document, visit func(document) error) error {
	children, err := doc.Children(ctx)
	if err != nil {
		return err
	}

	for _, child := range children {
		if err := walkDescendants(ctx, child, visit); err != nil {
			return err
		}
		if err := visit(child); err != nil {
			return err
		}
	}

	return nil
}

func collectJobErrors(jobs []deleteJob) error {
	var result *multierror.Error
	for _, job := range jobs {
		if err := job.Err(); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func countFailed(err error) int {
	var merr *multierror.Error
	if errors.As(err, &merr) {
		return len(merr.Errors)
	}
	return 0
}

func recordDeleted(span trace.Span, deleted int) {
	span.SetAttributes(attribute.Int("docstore.deleted", deleted))
	metrics.RecordDocumentsDeleted(deleted)
}

type firestoreDocument struct {
	ref *firestore.DocumentRef
}

func (d firestoreDocument) Path() string {
	return d.ref.Path
}

// Children uses DocumentRefs, which also yields documents that do not exist
// but hold subcollections, so such branches are reached too.
func (d firestoreDocument) Children(ctx context.Context) ([]document, error) {
	var children []document

	collections := d.ref.Collections(ctx)
	for {
		collection, err := collections.Next()
		if errors.Is(err, iterator.Done) {
			return children, nil
		}
		if err != nil {
			return nil, fmt.Errorf("list collections of %s: %w", d.ref.Path, err)
		}

		refs := collection.DocumentRefs(ctx)
		for {
			ref, err := refs.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				return nil, fmt.Errorf("list documents of %s: %w", collection.Path, err)
			}

			children = append(children, firestoreDocument{ref: ref})
		}
	}
}

type bulkDeleteQueue struct {
	bw *firestore.BulkWriter
}

func (q *bulkDeleteQueue) Delete(doc document) (deleteJob, error) {
	fsDoc, ok := doc.(firestoreDocument)
	if !ok {
		return nil, fmt.Errorf("unexpected document type %T", doc)
	}

	job, err := q.bw.Delete(fsDoc.ref)
	if err != nil {
		return nil, err
	}

	return bulkDeleteJob{job: job}, nil
}

func (q *bulkDeleteQueue) Flush() {
	q.bw.Flush()
}

func (q *bulkDeleteQueue) End() {
	q.bw.End()
}

type bulkDeleteJob struct {
	job *firestore.BulkWriterJob
}

func (j bulkDeleteJob) Err() error {
	_, err := j.job.Results()
	return err
}

var _ Store = (*FirestoreStore)(nil)
