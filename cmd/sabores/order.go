package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sabores/internal/client"
	"sabores/internal/domain"
	"sabores/internal/dto"
)

func orderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Submit and list orders through the storefront API",
	}
	cmd.AddCommand(orderSubmitCmd(a))
	cmd.AddCommand(orderListCmd(a))
	return cmd
}

func orderSubmitCmd(a *app) *cobra.Command {
	var req dto.SubmitOrderRequest

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Place an order; kept on this device when the server is unreachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			device, db, err := a.openDevice(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			c := a.newClient(device)
			req.CustomerWhatsapp = client.FormatPhoneNumber(req.CustomerWhatsapp)

			if product, err := c.GetProduct(ctx, req.ProductID); err == nil {
				if req.ProductName == "" {
					req.ProductName = product.Name
				}
				req.ProductImage = product.CoverImage()
				req.ProductPrice = product.PublicPrice()
			} else {
				a.logger.Warn("product details unavailable", zap.String("productId", req.ProductID), zap.Error(err))
			}

			resp, err := c.SubmitOrder(ctx, req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, resp.Message)
			fmt.Fprintf(out, "  Pedido:    %s\n", resp.OrderID)
			fmt.Fprintf(out, "  Salvo em:  %s\n", resp.SavedIn)
			fmt.Fprintf(out, "  WhatsApp:  %s\n", yesNo(resp.WebhookSent))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.ProductID, "product", "", "Product id")
	f.StringVar(&req.ProductName, "product-name", "", "Product name (looked up when omitted)")
	f.StringVar(&req.CustomerName, "name", "", "Customer name")
	f.StringVar(&req.CustomerAddress, "address", "", "Delivery address")
	f.StringVar(&req.CustomerWhatsapp, "whatsapp", "", "Customer WhatsApp number")
	f.StringVar(&req.DeliveryDate, "delivery-date", "", "Delivery date (YYYY-MM-DD)")
	f.StringVar(&req.PaymentMethod, "payment", "pix", "Payment method (pix, card)")
	f.StringVar(&req.Observations, "notes", "", "Notes for the kitchen")

	return cmd
}

func orderListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List orders known to the server",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := a.newClient(nil).ListOrders(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Fonte: %s\n", resp.Source)
			if resp.Message != "" {
				fmt.Fprintln(out, resp.Message)
			}
			printOrders(out, resp.Orders)
			return nil
		},
	}
}

func printOrders(out io.Writer, orders []domain.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(out, "(nenhum pedido)")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCRIADO\tCLIENTE\tPRODUTO\tSTATUS")
	for _, o := range orders {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			o.ID, o.CreatedAt.Local().Format("02/01/2006 15:04"), o.CustomerName, o.ProductName, o.Status)
	}
	tw.Flush()
}

func yesNo(v bool) string {
	if v {
		return "enviado"
	}
	return "não enviado"
}
