// fluencyctl es el CLI de operación contra la API HTTP del servicio.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type client struct {
	BaseURL   string
	Token     string
	OutFormat string // "json" | "text"
	HTTP      *http.Client
}

func (c *client) do(method, path string, body []byte) (int, []byte, error) {
	u := strings.TrimRight(c.BaseURL, "/") + path
	req, err := http.NewRequest(method, u, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b, nil
}

func (c *client) print(status int, body []byte) {
	if c.OutFormat == "json" {
		var v any
		if json.Unmarshal(body, &v) == nil {
			p, _ := json.MarshalIndent(v, "", "  ")
			fmt.Println(string(p))
			return
		}
	}
	if len(body) > 0 {
		fmt.Println(string(body))
	} else {
		fmt.Printf("status=%d\n", status)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	var (
		baseURL = envOr("FLUENCY_URL", "http://localhost:5000")
		tk      = envOr("FLUENCY_TOKEN", "")
		out     = envOr("FLUENCY_OUT", "text")
	)

	root := &cobra.Command{
		Use:   "fluencyctl",
		Short: "CLI de operación para el servicio Fluency",
	}
	root.PersistentFlags().StringVar(&baseURL, "url", baseURL, "URL base de la API (env FLUENCY_URL)")
	root.PersistentFlags().StringVar(&tk, "token", tk, "Bearer token (env FLUENCY_TOKEN)")
	root.PersistentFlags().StringVar(&out, "out", out, "Formato de salida: json|text")

	cl := &client{HTTP: &http.Client{Timeout: 30 * time.Second}}
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cl.BaseURL = baseURL
		cl.Token = tk
		cl.OutFormat = out
	}

	// ping
	root.AddCommand(&cobra.Command{
		Use:   "ping",
		Short: "Chequea que el servicio responda",
		RunE: func(cmd *cobra.Command, args []string) error {
			status, body, err := cl.do("GET", "/healthz", nil)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("ping failed: status=%d body=%s", status, string(body))
			}
			fmt.Println("ok")
			return nil
		},
	})

	// token <email>
	root.AddCommand(&cobra.Command{
		Use:   "token <email>",
		Short: "Emite un token para el email dado",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _ := json.Marshal(map[string]string{"email": args[0]})
			status, resp, err := cl.do("POST", "/jwt", body)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("token failed: status=%d body=%s", status, string(resp))
			}
			cl.print(status, resp)
			return nil
		},
	})

	// users
	usersCmd := &cobra.Command{Use: "users", Short: "Operaciones sobre usuarios"}

	var listRole string
	usersList := &cobra.Command{
		Use:   "list",
		Short: "Lista usuarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/users"
			if listRole != "" {
				path += "?role=" + url.QueryEscape(listRole)
			}
			status, resp, err := cl.do("GET", path, nil)
			if err != nil {
				return err
			}
			cl.print(status, resp)
			return nil
		},
	}
	usersList.Flags().StringVar(&listRole, "role", "", "Filtrar por rol (student|instructor|admin)")
	usersCmd.AddCommand(usersList)

	usersSetRole := &cobra.Command{
		Use:   "set-role <user-id> <role>",
		Short: "Cambia el rol de un usuario (requiere token de admin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _ := json.Marshal(map[string]string{"role": args[1]})
			status, resp, err := cl.do("PATCH", "/users/"+url.PathEscape(args[0]), body)
			if err != nil {
				return err
			}
			if status/100 != 2 {
				return fmt.Errorf("set-role failed: status=%d body=%s", status, string(resp))
			}
			cl.print(status, resp)
			return nil
		},
	}
	usersCmd.AddCommand(usersSetRole)
	root.AddCommand(usersCmd)

	// classes list
	classesCmd := &cobra.Command{Use: "classes", Short: "Operaciones sobre clases"}
	var classStatus string
	classesList := &cobra.Command{
		Use:   "list",
		Short: "Lista clases",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/classes"
			if classStatus != "" {
				path += "?status=" + url.QueryEscape(classStatus)
			}
			status, resp, err := cl.do("GET", path, nil)
			if err != nil {
				return err
			}
			cl.print(status, resp)
			return nil
		},
	}
	classesList.Flags().StringVar(&classStatus, "status", "", "Filtrar por status")
	classesCmd.AddCommand(classesList)
	root.AddCommand(classesCmd)

	// cart list --email
	cartCmd := &cobra.Command{Use: "cart", Short: "Operaciones sobre el carrito"}
	var cartEmail string
	cartList := &cobra.Command{
		Use:   "list",
		Short: "Lista el carrito de un estudiante (requiere su token)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cartEmail == "" {
				return fmt.Errorf("--email es obligatorio")
			}
			status, resp, err := cl.do("GET", "/cart?email="+url.QueryEscape(cartEmail), nil)
			if err != nil {
				return err
			}
			cl.print(status, resp)
			return nil
		},
	}
	cartList.Flags().StringVar(&cartEmail, "email", "", "Email del dueño del carrito")
	cartCmd.AddCommand(cartList)
	root.AddCommand(cartCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
