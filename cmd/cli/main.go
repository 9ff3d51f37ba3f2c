package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"recharge-earn/internal/api"
	"recharge-earn/internal/callback"
	"recharge-earn/internal/catalog"
	"recharge-earn/internal/config"
	"recharge-earn/internal/flows"
	"recharge-earn/internal/store"
	"recharge-earn/internal/utils"
)

// shareBase is the public site referral links point at.
const shareBase = "https://recharge-earn.vercel.app"

// gatewayWait bounds how long we wait for the payment gateway to redirect
// back before offering manual reference entry.
const gatewayWait = 5 * time.Minute

type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	reader  *bufio.Reader
	client  *api.Client
	auth    *store.AuthStore
	guard   *flows.Guard
	account *flows.Account

	registration *flows.RegistrationFlow
	electricity  *flows.ElectricityFlow
	data         *flows.DataFlow
	airtime      *flows.AirtimeFlow
	cable        *flows.CableFlow
}

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	kv, err := store.OpenKV(cfg.StorageDir)
	if err != nil {
		log.Fatal(err)
	}
	auth := store.NewAuthStore(kv, logger)
	pending := store.NewRegistrations(kv)

	client := api.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout, auth, logger)
	client.SetUnauthorizedHook(func() {
		_ = auth.Logout()
		fmt.Println("\nYour session has expired. Please log in again.")
	})

	if ts, err := client.Health(ctx); err != nil {
		logger.Warn("backend health check failed", zap.Error(err))
		fmt.Println("Warning: the RechargeEarn backend is not reachable right now.")
	} else {
		logger.Debug("backend healthy", zap.String("timestamp", ts))
	}

	a := &app{
		cfg:          cfg,
		logger:       logger,
		reader:       reader,
		client:       client,
		auth:         auth,
		guard:        flows.NewGuard(auth, func() { fmt.Println("Please log in first.") }),
		account:      flows.NewAccount(client, auth, shareBase, logger),
		registration: flows.NewRegistrationFlow(client, auth, pending, logger),
		electricity:  flows.NewElectricityFlow(client, logger),
		data:         flows.NewDataFlow(client, logger),
		airtime:      flows.NewAirtimeFlow(client, logger),
		cable:        flows.NewCableFlow(client, logger),
	}

	fmt.Println("===== RechargeEarn =====")
	for {
		if a.auth.IsAuthenticated() {
			a.runMainMenu(ctx)
		} else {
			a.runAuthMenu(ctx)
		}
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

func (a *app) runAuthMenu(ctx context.Context) {
	fmt.Println("\n[1] Login")
	fmt.Println("[2] Register")
	fmt.Println("[3] Verify pending registration")
	fmt.Println("[4] Forgot password")
	fmt.Println("[5] Exit")
	fmt.Print("Select an option: ")

	switch a.readLine() {
	case "1":
		a.loginFlow(ctx)
	case "2":
		a.registerFlow(ctx)
	case "3":
		a.resumeRegistrationFlow(ctx)
	case "4":
		a.forgotPasswordFlow(ctx)
	case "5":
		os.Exit(0)
	default:
		fmt.Println("Invalid option.")
	}
}

func (a *app) runMainMenu(ctx context.Context) {
	if user, ok := a.auth.User(); ok {
		fmt.Printf("\n--- Logged in as %s %s ---\n", user.FirstName, user.LastName)
	}
	fmt.Println("[1] Wallet & transactions")
	fmt.Println("[2] Fund wallet")
	fmt.Println("[3] Buy data")
	fmt.Println("[4] Buy airtime")
	fmt.Println("[5] Pay electricity")
	fmt.Println("[6] Cable TV")
	fmt.Println("[7] Referrals")
	fmt.Println("[8] Profile")
	fmt.Println("[9] Change password")
	fmt.Println("[10] Logout")
	fmt.Println("[0] Exit")
	fmt.Print("Select an option: ")

	choice := a.readLine()
	var err error
	switch choice {
	case "1":
		err = a.guard.Require(func() error { return a.walletFlow(ctx) })
	case "2":
		err = a.guard.Require(func() error { return a.fundingFlow(ctx) })
	case "3":
		err = a.guard.Require(func() error { return a.dataFlow(ctx) })
	case "4":
		err = a.guard.Require(func() error { return a.airtimeFlow(ctx) })
	case "5":
		err = a.guard.Require(func() error { return a.electricityFlow(ctx) })
	case "6":
		err = a.guard.Require(func() error { return a.cableFlow(ctx) })
	case "7":
		err = a.guard.Require(func() error { return a.referralsFlow(ctx) })
	case "8":
		err = a.guard.Require(func() error { return a.profileFlow(ctx) })
	case "9":
		err = a.guard.Require(func() error { return a.changePasswordFlow(ctx) })
	case "10":
		if err := a.auth.Logout(); err != nil {
			fmt.Printf("Logout failed: %v\n", err)
		} else {
			fmt.Println("Logged out.")
		}
	case "0":
		os.Exit(0)
	default:
		fmt.Println("Invalid option.")
	}
	if err != nil && !errors.Is(err, flows.ErrNotAuthenticated) {
		fmt.Printf("Error: %v\n", err)
	}
}

func (a *app) loginFlow(ctx context.Context) {
	email := a.prompt("Email: ")
	password := a.prompt("Password: ")
	if err := a.account.Login(ctx, email, password); err != nil {
		fmt.Printf("Login failed: %v\n", err)
		return
	}
	fmt.Println("Welcome back!")
}

func (a *app) registerFlow(ctx context.Context) {
	a.registration.Reset()
	form := flows.RegisterForm{
		FirstName:    a.prompt("First name: "),
		LastName:     a.prompt("Last name: "),
		Email:        a.prompt("Email: "),
		Password:     a.prompt("Password (min 6 characters): "),
		ReferralCode: a.prompt("Referral code (optional): "),
	}
	if err := a.registration.SubmitRegistration(ctx, form); err != nil {
		fmt.Printf("Registration failed: %v\n", err)
		return
	}
	fmt.Printf("A 6-digit code was sent to %s.\n", a.registration.Email())
	a.otpFlow(ctx)
}

// resumeRegistrationFlow re-enters OTP verification for a registration
// started in an earlier session, using the persisted pending data.
func (a *app) resumeRegistrationFlow(ctx context.Context) {
	a.registration.Reset()
	email := a.prompt("Email you registered with: ")
	if err := a.registration.ResumeOTP(email); err != nil {
		fmt.Println("No pending registration found, please register again.")
		return
	}
	fmt.Printf("Resuming verification for %s.\n", email)
	a.otpFlow(ctx)
}

func (a *app) otpFlow(ctx context.Context) {
	for {
		fmt.Println("\n[1] Enter code")
		fmt.Println("[2] Resend code")
		fmt.Println("[3] Cancel")
		fmt.Print("Select an option: ")
		switch a.readLine() {
		case "1":
			otp := a.prompt("6-digit code: ")
			phone := a.prompt("Phone number (e.g. 08012345678): ")
			if err := a.registration.SubmitOTP(ctx, otp, phone); err != nil {
				if errors.Is(err, flows.ErrRegistrationDataMissing) {
					fmt.Println("Registration data missing, please register again.")
					return
				}
				fmt.Printf("Verification failed: %v\n", err)
				continue
			}
			fmt.Println("Account verified. You are now logged in.")
			return
		case "2":
			if err := a.registration.Resend(ctx); err != nil {
				if errors.Is(err, flows.ErrResendCooldown) {
					fmt.Printf("Please wait %s before resending.\n", a.registration.ResendRemaining())
				} else {
					fmt.Printf("Resend failed: %v\n", err)
				}
				continue
			}
			fmt.Println("A new code is on its way.")
		case "3":
			return
		default:
			fmt.Println("Invalid option.")
		}
	}
}

func (a *app) forgotPasswordFlow(ctx context.Context) {
	flow := flows.NewForgotPasswordFlow(a.client)

	email := a.prompt("Account email: ")
	if err := flow.SubmitEmail(ctx, email); err != nil {
		fmt.Printf("Request failed: %v\n", err)
		return
	}
	fmt.Printf("A reset code was sent to %s.\n", email)

	otp := a.prompt("6-digit code: ")
	if err := flow.SubmitOTP(otp); err != nil {
		fmt.Printf("Invalid code: %v\n", err)
		return
	}

	newPassword := a.prompt("New password (min 6 characters): ")
	confirm := a.prompt("Confirm new password: ")
	if err := flow.SubmitReset(ctx, newPassword, confirm); err != nil {
		fmt.Printf("Reset failed: %v\n", err)
		return
	}
	fmt.Println("Password reset. You can log in with your new password.")
}

func (a *app) walletFlow(ctx context.Context) error {
	overview, err := a.account.Wallet(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nBalance: %s\n", utils.FormatNaira(overview.Balance.Balance))
	if len(overview.Transactions) == 0 {
		fmt.Println("No transactions yet.")
		return nil
	}

	category := a.prompt("Filter by category (e.g. funding, data_purchase; enter for all): ")
	transactions := flows.FilterTransactionsByCategory(overview.Transactions, category)
	if len(transactions) == 0 {
		fmt.Println("No transactions in that category.")
		return nil
	}

	fmt.Println("\nRecent transactions:")
	for _, tx := range transactions {
		sign := "-"
		if tx.Type == "credit" {
			sign = "+"
		}
		when := tx.CreatedAt
		if t, err := time.Parse(time.RFC3339, tx.CreatedAt); err == nil {
			when = utils.FormatDate(t)
		}
		fmt.Printf("  %s%s  %-22s %-10s %s\n",
			sign, utils.FormatNaira(tx.Amount),
			utils.TransactionCategoryLabel(tx.Category),
			tx.Status,
			when)
		if tx.Token != "" {
			fmt.Printf("    Token: %s\n", tx.Token)
		}
	}

	if ref := a.prompt("\nLook up a transaction by reference (enter to skip): "); ref != "" {
		tx, err := a.client.GetTransactionByReference(ctx, ref)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s  %s (%s)\n", tx.Reference,
			utils.FormatNaira(tx.Amount), utils.TransactionCategoryLabel(tx.Category), tx.Status)
		if tx.Description != "" {
			fmt.Printf("  %s\n", tx.Description)
		}
		if tx.Token != "" {
			fmt.Printf("  Token: %s\n", tx.Token)
		}
	}
	return nil
}

func (a *app) fundingFlow(ctx context.Context) error {
	flow := flows.NewFundingFlow(a.client, a.logger)

	user, _ := a.auth.User()
	email := user.Email
	if email == "" {
		email = a.prompt("Email for the payment receipt: ")
	}
	amount, err := a.promptAmount("Amount to fund (min ₦100): ")
	if err != nil {
		return err
	}

	init, err := flow.SubmitFunding(ctx, email, amount)
	if err != nil {
		return err
	}

	server := callback.NewServer(a.logger)
	if err := server.Start(a.cfg.CallbackAddr); err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	fmt.Println("\nOpen this link in your browser to complete the payment:")
	fmt.Printf("  %s\n", init.AuthorizationURL)
	fmt.Printf("Waiting for the gateway to redirect back (%s)...\n", server.URL())

	waitCtx, cancel := context.WithTimeout(ctx, gatewayWait)
	defer cancel()
	reference, err := server.WaitForReference(waitCtx)
	if err != nil {
		fmt.Println("No redirect received.")
		reference = a.prompt("Paste the payment reference to verify (or leave empty to cancel): ")
		if reference == "" {
			flow.Reset()
			return nil
		}
	}

	if err := flow.HandleReturn(ctx, url.Values{"reference": {reference}}); err != nil {
		result := flow.Result()
		fmt.Printf("Payment failed: %s\n", result.FailureMsg)
		return nil
	}

	result := flow.Result()
	fmt.Println("\nPayment successful!")
	if result.HasAmount {
		fmt.Printf("  Amount:  %s\n", utils.FormatNaira(result.Amount))
	}
	fmt.Printf("  Ref:     %s\n", result.Reference)
	if result.HasBalance {
		fmt.Printf("  Balance: %s\n", utils.FormatNaira(result.Balance))
	}
	return nil
}

func (a *app) dataFlow(ctx context.Context) error {
	fmt.Println("\nFetching data plans...")
	if err := a.data.LoadPlans(ctx); err != nil {
		return err
	}

	network, ok := a.pickNetwork()
	if !ok {
		return nil
	}
	plans := a.data.Plans(network)
	if len(plans) == 0 {
		fmt.Printf("No plans available for %s right now.\n", network)
		return nil
	}
	fmt.Printf("\n%s plans:\n", network)
	for _, plan := range plans {
		fmt.Printf("  [%d] %s - ₦%s\n", plan.ID, plan.Name, plan.Price)
	}

	planID, err := a.promptInt("Plan ID: ")
	if err != nil {
		return err
	}
	if err := a.data.SelectPlan(network, planID); err != nil {
		return err
	}

	phone := a.prompt("Phone number: ")
	conf, err := a.data.PreparePurchase(phone)
	if err != nil {
		return err
	}
	fmt.Printf("\nBuy %s (₦%s) for %s on %s? [y/N]: ", conf.PlanName, conf.Price, conf.PhoneNumber, conf.Network)
	if !a.confirmed() {
		a.data.Reset()
		return nil
	}
	if err := a.data.ConfirmPurchase(ctx); err != nil {
		return err
	}
	fmt.Println("Data purchase successful!")
	return nil
}

func (a *app) airtimeFlow(ctx context.Context) error {
	network, ok := a.pickNetwork()
	if !ok {
		return nil
	}
	fmt.Printf("Quick amounts: %v\n", catalog.AirtimeQuickAmounts)
	amount, err := a.promptAmount("Amount (min ₦50): ")
	if err != nil {
		return err
	}
	phone := a.prompt("Phone number: ")

	if err := a.airtime.Submit(ctx, network, phone, amount); err != nil {
		return err
	}
	fmt.Println("Airtime purchase successful!")
	return nil
}

func (a *app) electricityFlow(ctx context.Context) error {
	fmt.Println("\nProviders:")
	for i, p := range catalog.ElectricityProviders {
		fmt.Printf("  [%d] %s\n", i+1, p.Name)
	}
	idx, err := a.promptInt("Provider: ")
	if err != nil {
		return err
	}
	if idx < 1 || idx > len(catalog.ElectricityProviders) {
		fmt.Println("Invalid provider.")
		return nil
	}
	provider := catalog.ElectricityProviders[idx-1].Name

	planType := catalog.Prepaid
	fmt.Print("Meter type [1] Prepaid [2] Postpaid: ")
	if a.readLine() == "2" {
		planType = catalog.Postpaid
	}

	meter := a.prompt("Meter number (min 10 digits): ")
	fmt.Println("Verifying meter...")
	if err := a.electricity.SubmitVerify(ctx, provider, planType, meter); err != nil {
		return err
	}
	info, _ := a.electricity.MeterInfo()
	fmt.Printf("\nCustomer: %s\n", info.CustomerName)
	if info.Address != "" {
		fmt.Printf("Address:  %s\n", info.Address)
	}

	phone := a.prompt("Phone number: ")
	amount, err := a.promptAmount("Amount (min ₦100): ")
	if err != nil {
		a.electricity.Back()
		return err
	}
	conf, err := a.electricity.PreparePurchase(phone, amount)
	if err != nil {
		a.electricity.Back()
		return err
	}

	fmt.Printf("\nPay %s to meter %s (%s %s)? This cannot be reversed. [y/N]: ",
		utils.FormatNaira(conf.Amount), conf.MeterNumber, conf.Provider, conf.PlanType)
	if !a.confirmed() {
		a.electricity.Reset()
		return nil
	}
	if err := a.electricity.ConfirmPurchase(ctx); err != nil {
		return err
	}

	fmt.Println("\nPayment successful!")
	if token := a.electricity.Token(); token != "" {
		fmt.Printf("Recharge token: %s\n", token)
		fmt.Println("Save this token, it clears from the screen shortly.")
	}
	return nil
}

func (a *app) cableFlow(ctx context.Context) error {
	fmt.Println("\nPlans:")
	for _, plan := range catalog.CablePlans {
		fmt.Printf("  [%d] %s - %s\n", plan.ID, plan.Name, utils.FormatNaira(plan.Price))
	}
	planID, err := a.promptInt("Plan ID: ")
	if err != nil {
		return err
	}
	smartcard := a.prompt("Smartcard number (min 10 digits): ")

	if err := a.cable.Submit(ctx, smartcard, planID); err != nil {
		return err
	}
	fmt.Println("Subscription successful!")
	return nil
}

func (a *app) referralsFlow(ctx context.Context) error {
	overview, err := a.account.Referrals(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nYour referral code: %s\n", overview.Code)
	fmt.Printf("Share link: %s\n", overview.ShareURL)
	fmt.Printf("Total referrals: %d\n", overview.Stats.TotalReferrals)
	fmt.Printf("Total rewards:   %s\n", utils.FormatNaira(overview.Stats.TotalRewards))
	return nil
}

func (a *app) profileFlow(ctx context.Context) error {
	user, err := a.account.RefreshProfile(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("\nName:  %s %s\n", user.FirstName, user.LastName)
	fmt.Printf("Email: %s\n", user.Email)
	if user.Phone != "" {
		fmt.Printf("Phone: %s\n", user.Phone)
	}
	fmt.Printf("Email verified: %v\n", user.IsEmailVerified)
	if exp, ok := a.auth.ExpiresAt(); ok {
		fmt.Printf("Session expires: %s\n", exp.Local().Format("Jan 2, 2006 03:04 PM"))
	}
	return nil
}

func (a *app) changePasswordFlow(ctx context.Context) error {
	current := a.prompt("Current password: ")
	newPassword := a.prompt("New password (min 6 characters): ")
	confirm := a.prompt("Confirm new password: ")
	if err := a.account.ChangePassword(ctx, current, newPassword, confirm); err != nil {
		return err
	}
	fmt.Println("Password changed.")
	return nil
}

func (a *app) pickNetwork() (string, bool) {
	fmt.Println("\nNetworks:")
	for i, n := range catalog.Networks {
		fmt.Printf("  [%d] %s\n", i+1, n)
	}
	idx, err := a.promptInt("Network: ")
	if err != nil || idx < 1 || idx > len(catalog.Networks) {
		fmt.Println("Invalid network.")
		return "", false
	}
	return catalog.Networks[idx-1], true
}

func (a *app) readLine() string {
	line, _ := a.reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	return a.readLine()
}

func (a *app) promptInt(label string) (int, error) {
	v, err := strconv.Atoi(a.prompt(label))
	if err != nil {
		return 0, fmt.Errorf("enter a number")
	}
	return v, nil
}

func (a *app) promptAmount(label string) (float64, error) {
	v, err := strconv.ParseFloat(a.prompt(label), 64)
	if err != nil {
		return 0, fmt.Errorf("enter an amount")
	}
	return v, nil
}

func (a *app) confirmed() bool {
	answer := strings.ToLower(a.readLine())
	return answer == "y" || answer == "yes"
}
