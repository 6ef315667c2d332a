package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"golang.org/x/term"

	"portfolio-backend/pkg/client"
)

type cliConfig struct {
	APIURL    string `env:"ADMIN_API_URL" envDefault:"http://localhost:5000"`
	TokenFile string `env:"ADMIN_TOKEN_FILE"`
}

func main() {
	_ = godotenv.Load()

	var cfg cliConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(err)
	}

	var store client.TokenStore = client.NewMemoryTokenStore()
	if path := tokenPath(cfg.TokenFile); path != "" {
		store = client.NewFileTokenStore(path)
	}
	c := client.New(cfg.APIURL, store)
	reader := bufio.NewReader(os.Stdin)
	ctx := context.Background()

	if _, ok := c.CurrentSession(); !ok {
		if err := loginFlow(ctx, c, reader); err != nil {
			log.Fatalf("login: %v", err)
		}
	}

	for {
		fmt.Println("===== Admin Panel =====")
		fmt.Println("[L] Listar submissions")
		fmt.Println("[S] Salir")
		fmt.Println("[Q] Cerrar sesión y salir")
		fmt.Print("Opción: ")
		choice, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		switch strings.ToUpper(strings.TrimSpace(choice)) {
		case "L":
			if err := printSubmissions(ctx, c); err != nil {
				if errors.Is(err, client.ErrForbidden) || errors.Is(err, client.ErrNoSession) || errors.Is(err, client.ErrUnauthorized) {
					fmt.Println("La sesión expiró, vuelve a ingresar.")
					if err := loginFlow(ctx, c, reader); err != nil {
						log.Fatalf("login: %v", err)
					}
					continue
				}
				fmt.Printf("error: %v\n", err)
			}
		case "S":
			return
		case "Q":
			if err := c.Logout(); err != nil {
				log.Printf("logout: %v", err)
			}
			return
		default:
			fmt.Println("Seleccion invalida.")
		}
	}
}

func tokenPath(configured string) string {
	if configured != "" {
		return configured
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "portfolio-backend", "admin_token")
}

func loginFlow(ctx context.Context, c *client.Client, reader *bufio.Reader) error {
	for attempt := 0; attempt < 3; attempt++ {
		fmt.Print("Usuario: ")
		username, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		password, err := readPassword(reader)
		if err != nil {
			return err
		}

		reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		session, err := c.Login(reqCtx, strings.TrimSpace(username), password)
		cancel()
		if err == nil {
			fmt.Printf("Sesión válida hasta %s\n", session.ExpiresAt.Local().Format(time.RFC1123))
			return nil
		}
		if errors.Is(err, client.ErrUnauthorized) {
			fmt.Println("Credenciales inválidas.")
			continue
		}
		return err
	}
	return errors.New("too many failed attempts")
}

func readPassword(reader *bufio.Reader) (string, error) {
	fmt.Print("Contraseña: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		return string(raw), err
	}
	line, err := reader.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err
}

func printSubmissions(ctx context.Context, c *client.Client) error {
	reqCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	submissions, err := c.ListSubmissions(reqCtx)
	if err != nil {
		return err
	}
	if len(submissions) == 0 {
		fmt.Println("No hay submissions.")
		return nil
	}
	for _, s := range submissions {
		fmt.Printf("\n[%s] %s <%s>\n%s\n", s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Name, s.Email, s.Message)
	}
	fmt.Println()
	return nil
}
