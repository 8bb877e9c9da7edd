package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"sabores/internal/domain"
)

func localCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "local",
		Short: "Inspect the orders kept on this device",
	}
	cmd.AddCommand(
		localListCmd(a),
		localShowCmd(a),
		localStatusCmd(a),
		localExportCmd(a),
		localClearCmd(a),
		localCountCmd(a),
	)
	return cmd
}

func localListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List device orders, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			device, db, err := a.openDevice(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			orders, err := device.GetOrders(cmd.Context())
			if err != nil {
				return err
			}
			printOrders(cmd.OutOrStdout(), orders)
			return nil
		},
	}
}

func localShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show one device order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			device, db, err := a.openDevice(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			o, err := device.GetOrderByID(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("order %s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Pedido:    %s\n", o.ID)
			fmt.Fprintf(out, "Status:    %s\n", o.Status)
			fmt.Fprintf(out, "Produto:   %s\n", o.ProductName)
			fmt.Fprintf(out, "Cliente:   %s\n", o.CustomerName)
			fmt.Fprintf(out, "WhatsApp:  %s\n", o.CustomerWhatsapp)
			fmt.Fprintf(out, "Endereço:  %s\n", o.CustomerAddress)
			fmt.Fprintf(out, "Pagamento: %s\n", o.PaymentMethod)
			if o.DeliveryDate != "" {
				fmt.Fprintf(out, "Entrega:   %s\n", o.DeliveryDate)
			}
			if o.Notes != "" {
				fmt.Fprintf(out, "Obs:       %s\n", o.Notes)
			}
			fmt.Fprintf(out, "Criado:    %s\n", o.CreatedAt.Local().Format("02/01/2006 15:04"))
			return nil
		},
	}
}

func localStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status [id] [pending|sent|delivered]",
		Short: "Change the status of a device order",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status := domain.OrderStatus(args[1])
			if !status.Valid() {
				return fmt.Errorf("invalid status %q (use pending, sent or delivered)", args[1])
			}

			device, db, err := a.openDevice(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			ok, err := device.UpdateOrderStatus(cmd.Context(), args[0], status)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("order %s not found on this device", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pedido %s agora está %s\n", args[0], status)
			return nil
		},
	}
}

func localExportCmd(a *app) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export device orders as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			device, db, err := a.openDevice(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			data, err := device.ExportOrders(cmd.Context())
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), data)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(data+"\n"), 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exportado para %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

func localClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every order kept on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			device, db, err := a.openDevice(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			if err := device.ClearOrders(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Pedidos locais apagados")
			return nil
		},
	}
}

func localCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count device orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			device, db, err := a.openDevice(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			total, err := device.Count(cmd.Context())
			if err != nil {
				return err
			}
			pending, err := device.PendingCount(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d\nPendentes: %d\n", total, pending)
			return nil
		},
	}
}
