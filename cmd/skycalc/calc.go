package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxygene76/skycalc/pkg/astronomy/cosmology"
	"github.com/oxygene76/skycalc/pkg/astronomy/orbital"
	"github.com/oxygene76/skycalc/pkg/astronomy/photometry"
	"github.com/oxygene76/skycalc/pkg/astronomy/units"
	"github.com/oxygene76/skycalc/pkg/opt"
)

func calcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate a single formula",
	}

	cmd.AddCommand(
		hubbleCmd(),
		redshiftCmd(),
		distanceCmd(),
		angularVelocityCmd(),
		orbitCmd(),
		photozCmd(),
	)

	return cmd
}

func hubbleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hubble",
		Short: "Hubble constant from recession velocity (km/s) and distance (Mpc)",
		RunE: func(cmd *cobra.Command, args []string) error {
			velocity, _ := cmd.Flags().GetFloat64("velocity")
			distance, _ := cmd.Flags().GetFloat64("distance")

			h, err := cosmology.HubbleConstant(velocity, distance)
			if err != nil {
				return err
			}
			fmt.Printf("H0 = %.2f km/s/Mpc\n", h)
			return nil
		},
	}
	cmd.Flags().Float64("velocity", 0, "recession velocity in km/s")
	cmd.Flags().Float64("distance", 0, "distance in Mpc")
	return cmd
}

func redshiftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "redshift",
		Short: "Redshift from observed and rest wavelengths",
		RunE: func(cmd *cobra.Command, args []string) error {
			observed, _ := cmd.Flags().GetFloat64("observed")
			rest, _ := cmd.Flags().GetFloat64("rest")

			z, err := cosmology.Redshift(observed, rest)
			if err != nil {
				return err
			}
			fmt.Printf("z = %.6f\n", z)
			return nil
		},
	}
	cmd.Flags().Float64("observed", 0, "observed wavelength")
	cmd.Flags().Float64("rest", 0, "rest wavelength")
	return cmd
}

func distanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distance",
		Short: "Hubble-law distance for a redshift",
		RunE: func(cmd *cobra.Command, args []string) error {
			z, _ := cmd.Flags().GetFloat64("z")
			h0 := opt.None()
			if cmd.Flags().Changed("h0") {
				v, _ := cmd.Flags().GetFloat64("h0")
				h0 = opt.Some(v)
			}

			d := cosmology.HubbleDistance(z, h0)
			fmt.Printf("Velocity: %.2f km/s\n", d.VelocityKMS)
			fmt.Printf("Distance: %.2f Mpc\n", d.DistanceMpc)
			fmt.Printf("          %.4e m\n", d.DistanceMeters)
			fmt.Printf("          %.4e ly\n", d.DistanceLightYrs)
			fmt.Printf("H0 used:  %.2f km/s/Mpc\n", d.H0Used)
			return nil
		},
	}
	cmd.Flags().Float64("z", 0, "redshift")
	cmd.Flags().Float64("h0", units.DefaultH0, "Hubble constant in km/s/Mpc")
	return cmd
}

func angularVelocityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "angular-velocity",
		Short: "Angular and linear velocity from period (s) and radius (m)",
		RunE: func(cmd *cobra.Command, args []string) error {
			period, _ := cmd.Flags().GetFloat64("period")
			radius, _ := cmd.Flags().GetFloat64("radius")

			rot, err := orbital.AngularVelocity(period, radius)
			if err != nil {
				return err
			}
			fmt.Printf("ω = %.10e rad/s\n", rot.AngularVelocity)
			fmt.Printf("v = %.2f km/s\n", rot.LinearVelocity/1000)
			return nil
		},
	}
	cmd.Flags().Float64("period", 0, "period in seconds")
	cmd.Flags().Float64("radius", 0, "radius in meters")
	return cmd
}

func orbitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orbit",
		Short: "Kepler orbit around a central mass",
		RunE: func(cmd *cobra.Command, args []string) error {
			mass, _ := cmd.Flags().GetFloat64("mass")
			aAU, _ := cmd.Flags().GetFloat64("a")
			e, _ := cmd.Flags().GetFloat64("e")

			o := orbital.KeplerOrbit(mass*units.SolarMass, aAU*units.AU, e)
			fmt.Printf("Period:     %.4f years (%.2f days)\n", o.PeriodYears, o.PeriodDays)
			fmt.Printf("Speed:      %.2f km/s\n", o.OrbitalSpeed/1000)
			fmt.Printf("Energy:     %.4e J/kg\n", o.SpecificEnergy)
			fmt.Printf("Perihelion: %.4f AU\n", o.Perihelion/units.AU)
			fmt.Printf("Aphelion:   %.4f AU\n", o.Aphelion/units.AU)
			return nil
		},
	}
	cmd.Flags().Float64("mass", 1, "central mass in solar masses")
	cmd.Flags().Float64("a", 1, "semi-major axis in AU")
	cmd.Flags().Float64("e", 0, "eccentricity")
	return cmd
}

func photozCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "photoz",
		Short: "Photometric redshift from g, r and optional z fluxes (nanomaggies)",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _ := cmd.Flags().GetFloat64("g")
			r, _ := cmd.Flags().GetFloat64("r")
			z := opt.None()
			if cmd.Flags().Changed("z") {
				v, _ := cmd.Flags().GetFloat64("z")
				z = opt.Some(v)
			}

			est := photometry.PhotometricRedshift(g, r, z)
			fmt.Printf("photo-z: %s\n", est.PhotoZ)
			fmt.Printf("g-r:     %s\n", est.ColorGR)
			fmt.Printf("r-z:     %s\n", est.ColorRZ)
			fmt.Printf("Quality: %s (%s)\n", est.Quality, est.Method)
			return nil
		},
	}
	cmd.Flags().Float64("g", 0, "g-band flux")
	cmd.Flags().Float64("r", 0, "r-band flux")
	cmd.Flags().Float64("z", 0, "z-band flux (optional)")
	return cmd
}
