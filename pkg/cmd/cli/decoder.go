package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/nsyszr/decoderfleet/config"
	"github.com/nsyszr/decoderfleet/pkg/api/resource"
	"github.com/nsyszr/decoderfleet/pkg/decoder"
	"github.com/nsyszr/decoderfleet/pkg/devicecontrol"
	"github.com/nsyszr/decoderfleet/pkg/storage/memory"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type DecoderHandler struct {
	c *config.Config
}

func newDecoderHandler(c *config.Config) *DecoderHandler {
	return &DecoderHandler{c: c}
}

func (h *DecoderHandler) newService(pool decoder.Pool) *decoder.Service {
	dc := devicecontrol.NewClient(devicecontrol.Config{
		URL:     h.c.VendorURL,
		GroupID: h.c.VendorGroupID,
		Timeout: h.c.VendorTimeout,
	}, nil)
	return decoder.NewService(memory.NewStore().Subscribers(), dc, pool,
		decoder.WithConcurrency(h.c.FetchConcurrency))
}

func getAddress(cmd *cobra.Command, args []string) string {
	if len(args) < 1 || args[0] == "" {
		fmt.Println(cmd.UsageString())
		os.Exit(2)
	}
	return args[0]
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Info prints the vendor state of one decoder.
func (h *DecoderHandler) Info(cmd *cobra.Command, args []string) {
	address := getAddress(cmd, args)
	setupLogging(h.c)

	if !h.info(cmd.Context(), cmd.OutOrStdout(), address) {
		os.Exit(1)
	}
}

func (h *DecoderHandler) info(ctx context.Context, w io.Writer, address string) bool {
	m, ok := h.newService(decoder.Pool{}).FetchDecoderState(ctx, address)
	if !ok {
		log.WithField("address", address).Error("Decoder is unavailable")
		return false
	}
	if err := printJSON(w, resource.NewDecoderState(m)); err != nil {
		log.Error("Failed to print decoder state: ", err)
		return false
	}
	return true
}

// Reset asks the vendor to restart one decoder.
func (h *DecoderHandler) Reset(cmd *cobra.Command, args []string) {
	address := getAddress(cmd, args)
	setupLogging(h.c)

	if !h.reset(cmd.Context(), cmd.OutOrStdout(), address) {
		os.Exit(1)
	}
}

func (h *DecoderHandler) reset(ctx context.Context, w io.Writer, address string) bool {
	ok, msg := h.newService(decoder.Pool{}).RestartDecoder(ctx, address)
	fmt.Fprintln(w, msg)
	return ok
}

// Scan lists the decoders of the address pool that answer. The pool comes
// from --pool or ADDRESS_POOL.
func (h *DecoderHandler) Scan(cmd *cobra.Command, args []string) {
	setupLogging(h.c)

	spec, _ := cmd.Flags().GetString("pool")
	if spec == "" {
		spec = h.c.AddressPool
	}

	if err := h.scan(cmd.Context(), cmd.OutOrStdout(), spec); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func (h *DecoderHandler) scan(ctx context.Context, w io.Writer, spec string) error {
	pool, err := decoder.ParsePool(spec)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"pool":        pool.String(),
		"concurrency": h.c.FetchConcurrency,
	}).Info("Scanning address pool...")

	found := h.newService(pool).ListAvailableDecoders(ctx)
	log.Infof("%d of %d decoders available", len(found), pool.Len())

	return printJSON(w, resource.NewDecoderStateList(found))
}
