package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	ordersdomain "github.com/Sam99132/full-stack-backend/internal/domains/orders/domain"
	ordersports "github.com/Sam99132/full-stack-backend/internal/domains/orders/ports"
)

const tracerName = "github.com/Sam99132/full-stack-backend/internal/domains/orders/adapters/observability/service"

// Service decorates the order service with tracing, logging, and metrics.
type Service struct {
	inner   ordersports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core order service.
func New(inner ordersports.Service, opts ...Option) ordersports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) PlaceOrder(ctx context.Context, userID int64, items []ordersdomain.LineItem) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.PlaceOrder",
		trace.WithAttributes(attribute.Int64("order.user_id", userID), attribute.Int("order.line_count", len(items))))
	defer span.End()

	s.logInfo(ctx, "placing order", slog.Int64("user.id", userID), slog.Int("lines", len(items)))
	result, err := s.inner.PlaceOrder(ctx, userID, items)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to place order", slog.Int64("user.id", userID))
	}
	s.metrics.recordPlaced(ctx, result.Status)
	s.logInfo(ctx, "order placed",
		slog.Int64("order.id", result.ID),
		slog.String("order.total", result.Total.String()),
		slog.Int("order.items", len(result.Items)))
	return result, nil
}

func (s *Service) ListOrders(ctx context.Context, requester ordersports.Requester) ([]*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.ListOrders",
		trace.WithAttributes(attribute.Int64("requester.id", requester.UserID), attribute.Bool("requester.read_all", requester.ReadAll)))
	defer span.End()

	result, err := s.inner.ListOrders(ctx, requester)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders", slog.Int64("requester.id", requester.UserID))
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) GetOrder(ctx context.Context, requester ordersports.Requester, orderID int64) (*ordersdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "OrderService.GetOrder",
		trace.WithAttributes(attribute.Int64("order.id", orderID)))
	defer span.End()

	result, err := s.inner.GetOrder(ctx, requester, orderID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load order", slog.Int64("order.id", orderID))
	}
	return result, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	ordersPlaced metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersPlaced, _ := m.Int64Counter("orders.service.orders_placed", metric.WithDescription("Number of orders placed"))
	return serviceMetrics{ordersPlaced: ordersPlaced}
}

func (m serviceMetrics) recordPlaced(ctx context.Context, status ordersdomain.Status) {
	if m.ordersPlaced != nil {
		m.ordersPlaced.Add(ctx, 1, metric.WithAttributes(attribute.String("order.status", string(status))))
	}
}

var _ ordersports.Service = (*Service)(nil)
