package main

import (
	// Go Internal Packages
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"time"

	// Local Packages
	config "network-ops/config"
	errors "network-ops/errors"
	helpers "network-ops/helpers"
	kafka "network-ops/kafka"
	models "network-ops/models"
	mongodb "network-ops/repositories/mongodb"
	redis "network-ops/repositories/redis"
	network "network-ops/services/network"
	operations "network-ops/services/operations"
	processors "network-ops/services/processors"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

var (
	kindNames = []string{
		string(models.KindLicensePurchase),
		string(models.KindDelegatedPayment),
		string(models.KindWithdrawalDividends),
		string(models.KindWithdrawalCommissions),
		string(models.KindUserTransfer),
		string(models.KindKYCIdentity),
		string(models.KindKYCAddress),
	}
	stateNames = []string{
		string(models.StatePending),
		string(models.StateApproved),
		string(models.StateCompleted),
		string(models.StateRejected),
		string(models.StateFailed),
	}

	consumeCmd = kingpin.Command("consume", "Apply settlement events from kafka").Default()

	treeCmd  = kingpin.Command("tree", "Print the referral network a user may see")
	treeUser = treeCmd.Arg("username", "Root user").Required().String()
	treeJSON = treeCmd.Flag("json", "Print JSON instead of an indented list").Bool()

	listCmd   = kingpin.Command("list", "List operations")
	listKind  = listCmd.Flag("kind", "Operation kind").Enum(kindNames...)
	listState = listCmd.Flag("state", "Operation state").Enum(stateNames...)
	listOwner = listCmd.Flag("owner", "Owner username").String()
	listPage  = listCmd.Flag("page", "Zero-indexed page").Default("0").Int()
	listSize  = listCmd.Flag("size", "Page size").Default("20").Int()

	approveCmd   = kingpin.Command("approve", "Approve a pending operation")
	approveID    = approveCmd.Arg("id", "Operation id").Required().String()
	approveAdmin = approveCmd.Flag("admin", "Username of the reviewing admin").Required().String()

	rejectCmd     = kingpin.Command("reject", "Reject a pending operation")
	rejectID      = rejectCmd.Arg("id", "Operation id").Required().String()
	rejectAdmin   = rejectCmd.Flag("admin", "Username of the reviewing admin").Required().String()
	rejectReason  = rejectCmd.Flag("reason", "Rejection reason").String()
	rejectComment = rejectCmd.Flag("comment", "Comment shown to the user").String()

	submitCmd          = kingpin.Command("submit", "Submit a new operation")
	submitOwner        = submitCmd.Flag("owner", "Submitting user").Required().String()
	submitKind         = submitCmd.Flag("kind", "Operation kind").Required().Enum(kindNames...)
	submitAmount       = submitCmd.Flag("amount", "Signed amount").Default("0").String()
	submitCounterparty = submitCmd.Flag("counterparty", "Transfer or payment recipient").String()
	submitLicense      = submitCmd.Flag("license", "License id").String()
	submitDocument     = submitCmd.Flag("document", "KYC document URL").String()
)

// App wires the services behind the CLI commands.
type App struct {
	Config     config.Config
	Logger     *zap.Logger
	Metrics    *kprom.Metrics
	Operations *operations.Service
	Network    *network.Service
	Users      operations.UserFinder
	OpsRepo    *mongodb.OperationsRepository
	DLQ        *redis.DeadLetterQueue
	Publisher  *kafka.EventPublisher
	Out        io.Writer
}

func (a *App) Run(ctx context.Context, command string) error {
	switch command {
	case consumeCmd.FullCommand():
		return a.consume(ctx)
	case treeCmd.FullCommand():
		return a.tree(ctx, *treeUser, *treeJSON)
	case listCmd.FullCommand():
		filter := models.OperationFilter{
			Kind:    models.OperationKind(*listKind),
			State:   models.State(*listState),
			OwnerID: *listOwner,
		}
		page, err := a.Operations.List(ctx, operations.ViewAll, filter, models.Page{Number: *listPage, Size: *listSize})
		if err != nil {
			return a.notify(err)
		}
		return helpers.PrintStruct(a.Out, page)
	case approveCmd.FullCommand():
		actor, err := operations.ResolveActor(ctx, a.Users, *approveAdmin)
		if err != nil {
			return a.notify(err)
		}
		op, err := a.Operations.Approve(ctx, actor, *approveID)
		if err != nil {
			return a.notify(err)
		}
		return helpers.PrintStruct(a.Out, op)
	case rejectCmd.FullCommand():
		actor, err := operations.ResolveActor(ctx, a.Users, *rejectAdmin)
		if err != nil {
			return a.notify(err)
		}
		op, err := a.Operations.Reject(ctx, actor, *rejectID, models.RejectionReason(*rejectReason), *rejectComment)
		if err != nil {
			return a.notify(err)
		}
		return helpers.PrintStruct(a.Out, op)
	case submitCmd.FullCommand():
		amount, err := decimal.NewFromString(*submitAmount)
		if err != nil {
			return a.notify(errors.InvalidParamsErr(err))
		}
		payload := models.OperationPayload{
			Amount:       amount,
			Counterparty: *submitCounterparty,
			LicenseID:    *submitLicense,
			DocumentURL:  *submitDocument,
		}
		owner, err := operations.ResolveActor(ctx, a.Users, *submitOwner)
		if err != nil {
			return a.notify(err)
		}
		op, err := a.Operations.Submit(ctx, owner, models.OperationKind(*submitKind), payload)
		if err != nil {
			return a.notify(err)
		}
		return helpers.PrintStruct(a.Out, op)
	}
	return fmt.Errorf("unknown command %q", command)
}

// notify prints the user-facing message for err and only hands back errors
// nobody can act on.
func (a *App) notify(err error) error {
	msg, fatal := operations.Notice(err)
	a.Logger.Warn("action failed", zap.Error(err))
	_, _ = fmt.Fprintln(a.Out, msg)
	if fatal {
		return err
	}
	return nil
}

func (a *App) tree(ctx context.Context, username string, asJSON bool) error {
	tree, err := a.Network.VisibleTree(ctx, username)
	if err != nil {
		return a.notify(err)
	}
	if asJSON {
		return helpers.PrintStruct(a.Out, tree)
	}
	return helpers.RenderTree(a.Out, tree.Root)
}

func (a *App) consume(ctx context.Context) error {
	if !a.Config.Kafka.Consume {
		a.Logger.Info("settlement consumer disabled")
		return nil
	}

	srv := a.metricsServer()
	go func() {
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("metrics server stopped", zap.Error(err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	processor := processors.NewSettlementProcessor(a.Logger, a.OpsRepo, a.DLQ, a.Publisher)
	conf := &models.ConsumerConfig{
		Brokers:        a.Config.Kafka.Brokers,
		Name:           a.Config.Kafka.ConsumerName,
		Topic:          a.Config.Kafka.SettlementTopic,
		RecordsPerPoll: a.Config.Kafka.RecordsPerPoll,
	}
	consumer, err := kafka.NewSettlementConsumer(conf, processor, a.Metrics, a.Logger)
	if err != nil {
		return fmt.Errorf("cannot create settlement consumer: %w", err)
	}

	err = consumer.Poll(ctx)
	if stderrors.Is(err, context.Canceled) || ctx.Err() != nil {
		return nil
	}
	return err
}

func (a *App) metricsServer() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/metrics/kafka", a.Metrics.Handler())
	return &http.Server{
		Addr:              a.Config.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
